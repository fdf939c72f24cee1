//go:build !darwin || !cgo

package tis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenUnavailable(t *testing.T) {
	native, err := Open()
	require.ErrorIs(t, err, ErrUnavailable)
	require.Nil(t, native)
}
