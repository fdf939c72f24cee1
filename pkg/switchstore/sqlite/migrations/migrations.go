package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// Migrate brings the switch history schema in db up to date and returns the
// schema version it ends on.
func Migrate(db *sql.DB, log *zap.SugaredLogger) (uint, error) {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return 0, fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(files, ".")
	if err != nil {
		return 0, fmt.Errorf("create migration source: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}

	var dirty migrate.ErrDirty
	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
	case errors.As(err, &dirty):
		return 0, fmt.Errorf("history schema is dirty at version %d, remove the database to start over", dirty.Version)
	case err != nil:
		return 0, fmt.Errorf("migrate up: %w", err)
	}

	version, _, err := migrator.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	log.Debugw("switch history schema ready", "version", version)

	return version, nil
}
