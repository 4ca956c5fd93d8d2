package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Entry is one key of a profile table.
type Entry struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// KVStorage stores a profile as rows of its own table.
type KVStorage struct {
	db    *gorm.DB
	table string
}

func NewKVStorage(db *gorm.DB, profile string) *KVStorage {
	return &KVStorage{
		db:    db,
		table: TableName(profile),
	}
}

// TableName returns the table holding profile.
func TableName(profile string) string {
	if profile == "" {
		profile = "default"
	}
	return "eventhub_" + profile
}

// Migrate creates the profile table when it does not exist.
func (s *KVStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).Table(s.table).AutoMigrate(Migrations...)
}

func (s *KVStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Table(s.table).Where("name = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// SetMany upserts all entries in one transaction.
func (s *KVStorage) SetMany(ctx context.Context, entries map[string]string) error {
	query := upsertQuery(s.table)
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			if err := tx.Exec(query, key, value, now).Error; err != nil {
				return fmt.Errorf("upsert %s: %w", key, err)
			}
		}
		return nil
	})
}

func upsertQuery(table string) string {
	return fmt.Sprintf(
		`INSERT INTO %s (name, value, updated_at) VALUES (?, ?, ?) `+
			`ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		pq.QuoteIdentifier(table),
	)
}
