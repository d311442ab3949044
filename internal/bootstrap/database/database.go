package database

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
)

// OpenSQLite opens the SQLite file that backs the persistent response cache.
func OpenSQLite(ctx context.Context, dsn string) (*gorm.DB, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return nil, err
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.database"))

	if err := ensureSQLiteDirectory(logCtx, dsn); err != nil {
		return nil, errs.Wrap(err, "ensure sqlite directory")
	}

	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.Wrap(err, "open sqlite db")
	}
	logging.Info(logCtx, "database opened", slog.String("driver", "sqlite"), slog.String("dsn", dsn))
	return db, nil
}

func Close(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errs.Wrap(err, "get sql db")
	}
	if err := sqlDB.Close(); err != nil {
		return errs.Wrap(err, "close sql db")
	}
	logging.Info(logging.WithAttrs(ctx, slog.String("component", "bootstrap.database")), "database connection closed")
	return nil
}

func ensureSQLiteDirectory(ctx context.Context, dsn string) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	candidate := strings.TrimSpace(dsn)
	if candidate == "" || candidate == ":memory:" || strings.Contains(candidate, "mode=memory") {
		return nil
	}

	if strings.HasPrefix(strings.ToLower(candidate), "file:") {
		candidate = candidate[len("file:"):]
	}
	if idx := strings.Index(candidate, "?"); idx >= 0 {
		candidate = candidate[:idx]
	}

	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "create sqlite directory %q", dir)
	}

	logging.Debug(ctx, "sqlite directory ensured", slog.String("dir", dir))
	return nil
}
