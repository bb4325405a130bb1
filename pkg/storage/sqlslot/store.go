// Package sqlslot persists storage slots in a single SQL table through GORM.
package sqlslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopnex/pkg/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one row of storage_slots.
type Slot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;size:255"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Slot) TableName() string { return "storage_slots" }

// Store implements storage.Storage on top of a GORM connection.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a Store. The storage_slots table must already exist.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	var row Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading slot %q: %w: %w", key, storage.ErrUnavailable, err)
	}
	return row.Value, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	row := Slot{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing slot %q: %w: %w", key, storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&Slot{}).Error; err != nil {
		return fmt.Errorf("removing slot %q: %w: %w", key, storage.ErrUnavailable, err)
	}
	return nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
