package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Queries holds the statements used against the switch history database.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Switch struct {
	ID         int64
	FromID     string
	ToID       string
	Command    string
	SwitchedAt int64
}

type InsertSwitchParams struct {
	FromID     string
	ToID       string
	Command    string
	SwitchedAt int64
}

const insertSwitch = `
insert into switches (from_id, to_id, command, switched_at)
values (?, ?, ?, ?)
`

func (q *Queries) InsertSwitch(ctx context.Context, arg InsertSwitchParams) error {
	_, err := q.db.ExecContext(ctx, insertSwitch, arg.FromID, arg.ToID, arg.Command, arg.SwitchedAt)
	return err
}

const listRecentSwitches = `
select id, from_id, to_id, command, switched_at
from switches
order by switched_at desc, id desc
limit ?
`

// ListRecentSwitches returns the newest switches first. A negative limit
// returns all of them.
func (q *Queries) ListRecentSwitches(ctx context.Context, limit int64) ([]Switch, error) {
	rows, err := q.db.QueryContext(ctx, listRecentSwitches, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Switch
	for rows.Next() {
		var i Switch
		if err := rows.Scan(&i.ID, &i.FromID, &i.ToID, &i.Command, &i.SwitchedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const dumpTables = `
select sql from sqlite_master
where type = 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.queryStatements(ctx, dumpTables)
}

const dumpRest = `
select sql from sqlite_master
where type != 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.queryStatements(ctx, dumpRest)
}

func (q *Queries) queryStatements(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sqlite_master: %w", err)
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var statement sql.NullString
		if err := rows.Scan(&statement); err != nil {
			return nil, err
		}
		if !statement.Valid {
			items = append(items, nil)
			continue
		}
		items = append(items, &statement.String)
	}

	return items, rows.Err()
}
