package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/switchstore/sqlite/migrations"
)

// SwitchStore keeps the switch history in an SQLite database.
type SwitchStore struct {
	db      *sql.DB
	querier *Queries
}

func NewSwitchStore(filename string, log *zap.SugaredLogger) (*SwitchStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := migrations.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SwitchStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *SwitchStore) Close() error {
	return s.db.Close()
}

func (s *SwitchStore) RecordSwitch(ctx context.Context, record inputsource.SwitchRecord) error {
	if err := s.querier.InsertSwitch(ctx, InsertSwitchParams{
		FromID:     string(record.From),
		ToID:       string(record.To),
		Command:    record.Command,
		SwitchedAt: record.At.UnixNano(),
	}); err != nil {
		return fmt.Errorf("sqlite insert: %w", err)
	}

	return nil
}

func (s *SwitchStore) RecentSwitches(ctx context.Context, limit int) ([]inputsource.SwitchRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.querier.ListRecentSwitches(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make([]inputsource.SwitchRecord, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, inputsource.SwitchRecord{
			From:    inputsource.ID(row.FromID),
			To:      inputsource.ID(row.ToID),
			Command: row.Command,
			At:      time.Unix(0, row.SwitchedAt),
		})
	}

	return ret, nil
}
