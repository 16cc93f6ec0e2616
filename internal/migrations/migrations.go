// Package migrations applies the embedded goose migrations for the
// relational post store. Each GORM dialect has its own directory.
package migrations

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

var dialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

// Up runs every pending migration for the dialect behind db
func Up(db *gorm.DB, logger *slog.Logger) error {
	name := db.Dialector.Name()
	dialect, ok := dialects[name]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", name)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from GORM: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, name); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
