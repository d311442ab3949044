package model

// CacheEntry is one row of the persistent response cache.
// ExpiresAt is unix milliseconds; nil never expires.
type CacheEntry struct {
	Key       string `gorm:"column:key;type:text;primaryKey"`
	Value     []byte `gorm:"column:value;type:blob;not null"`
	ExpiresAt *int64 `gorm:"column:expires_at;index"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
