package main

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"codeberg.org/miketth/ism/pkg/switchstore/sqlite"
	"codeberg.org/miketth/ism/pkg/switchstore/sqlite/migrations"
)

func TestDumpSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:schemadumptest?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	version, err := migrations.Migrate(db, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var buf bytes.Buffer
	require.NoError(t, dumpSchema(context.Background(), sqlite.New(db), &buf))

	out := buf.String()
	assert.Contains(t, out, "CREATE TABLE switches")
	assert.Contains(t, out, "CREATE INDEX switches_switched_at")
}
