package migrations

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUp_SQLite(t *testing.T) {
	req := require.New(t)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrations.db")), &gorm.Config{})
	req.NoError(err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req.NoError(Up(db, logger))
	req.True(db.Migrator().HasTable("posts"))
	req.True(db.Migrator().HasIndex("posts", "idx_posts_created_at"))

	// Running again is a no-op
	req.NoError(Up(db, logger))

	// Empty fields are rejected by the schema itself
	err = db.Exec("INSERT INTO posts (title, content, created_at) VALUES ('', 'x', CURRENT_TIMESTAMP)").Error
	req.Error(err)
}
