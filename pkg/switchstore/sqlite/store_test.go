package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

func TestSwitchStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	log := zaptest.NewLogger(t).Sugar()

	store, err := NewSwitchStore(path, log)
	require.NoError(t, err)

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	records := []inputsource.SwitchRecord{
		{From: "A", To: "B", Command: "cycle", At: base},
		{From: "B", To: "C", Command: "set", At: base.Add(time.Minute)},
		{From: "C", To: "A", Command: "cycle", At: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		require.NoError(t, store.RecordSwitch(ctx, r))
	}
	require.NoError(t, store.Close())

	// reopening runs the migrations again without changes
	store, err = NewSwitchStore(path, log)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.RecentSwitches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, inputsource.ID("C"), got[0].From)
	assert.Equal(t, inputsource.ID("A"), got[0].To)
	assert.Equal(t, "cycle", got[0].Command)
	assert.True(t, got[0].At.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, inputsource.ID("C"), got[1].To)

	got, err = store.RecentSwitches(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDumpSchema(t *testing.T) {
	store, err := NewSwitchStore(filepath.Join(t.TempDir(), "history.db"), zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer store.Close()

	tables, err := store.querier.DumpTables(context.Background())
	require.NoError(t, err)

	var found bool
	for _, statement := range tables {
		if statement != nil && assert.NotEmpty(t, *statement) {
			found = found || strings.Contains(*statement, "CREATE TABLE switches")
		}
	}
	assert.True(t, found, "switches table is created")

	rest, err := store.querier.DumpRest(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, rest)
}
