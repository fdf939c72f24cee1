//go:build !darwin || !cgo

package tis

import (
	"unsafe"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// Native is never usable here; Open always fails.
type Native struct{}

func Open() (*Native, error) {
	return nil, ErrUnavailable
}

func (Native) Initialize() {}

func (Native) CurrentID() unsafe.Pointer { return nil }

func (Native) SelectByID(unsafe.Pointer) int32 { return inputsource.CodeNotFound }

func (Native) ListIDs(inputsource.Category) unsafe.Pointer { return nil }

func (Native) Release(unsafe.Pointer) {}
