package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

func TestSwitchStore(t *testing.T) {
	ctx := context.Background()
	store := NewSwitchStore()

	got, err := store.RecentSwitches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for i, to := range []inputsource.ID{"B", "C", "A"} {
		require.NoError(t, store.RecordSwitch(ctx, inputsource.SwitchRecord{
			To:      to,
			Command: "cycle",
			At:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err = store.RecentSwitches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inputsource.ID("A"), got[0].To)
	assert.Equal(t, inputsource.ID("C"), got[1].To)

	got, err = store.RecentSwitches(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
