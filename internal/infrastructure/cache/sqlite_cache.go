package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/persistence/sqlite/model"
	"insuredevents/internal/ports"
)

// SQLiteCache keeps cached responses across process restarts.
// Expiry is lazy, like the in-memory map: an expired row is deleted when read.
type SQLiteCache struct {
	db  *gorm.DB
	now func() time.Time
}

var _ ports.Cache = (*SQLiteCache)(nil)

func NewSQLiteCache(db *gorm.DB) *SQLiteCache {
	return &SQLiteCache{db: db, now: time.Now}
}

// Migrate creates the cache table when it does not exist yet.
func (c *SQLiteCache) Migrate(ctx context.Context) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).AutoMigrate(&model.CacheEntry{}); err != nil {
		return errs.Wrap(err, "auto migrate cache entries")
	}
	return nil
}

func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return nil, false, err
	}

	if key == "" {
		return nil, false, errors.New("key is required")
	}

	var row model.CacheEntry
	if err := c.db.WithContext(ctx).Where("key = ?", key).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "query cache by key")
	}

	if row.ExpiresAt != nil && c.now().UnixMilli() >= *row.ExpiresAt {
		if err := c.db.WithContext(ctx).Where("key = ?", key).Delete(&model.CacheEntry{}).Error; err != nil {
			return nil, false, errs.Wrap(err, "delete expired cache key")
		}
		return nil, false, nil
	}

	return row.Value, true, nil
}

func (c *SQLiteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key is required")
	}

	now := c.now()
	row := model.CacheEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: now.UTC().Format(time.RFC3339Nano),
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl).UnixMilli()
		row.ExpiresAt = &expiresAt
	}

	if err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert cache key")
	}

	return nil
}

func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key is required")
	}

	if err := c.db.WithContext(ctx).Where("key = ?", key).Delete(&model.CacheEntry{}).Error; err != nil {
		return errs.Wrap(err, "delete cache key")
	}
	return nil
}
