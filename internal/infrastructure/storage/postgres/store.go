// internal/infrastructure/storage/postgres/store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// CartRecord is the single-row-per-session cart persistence model. The
// payload is the cart's own versioned JSON; this table never interprets
// it.
type CartRecord struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name
func (CartRecord) TableName() string {
	return "cart_records"
}

// NewConnection opens the Postgres database and migrates the cart table
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if !cfg.App.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&CartRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cart records table: %w", err)
	}

	return db, nil
}

// Store keeps one cart record per session in Postgres. It is the
// durable-store choice for deployments without Redis.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Postgres-backed cart store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load retrieves the serialized cart record for a session
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var record CartRecord
	err := s.db.WithContext(ctx).First(&record, "session_id = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart record: %w", err)
	}
	return record.Data, nil
}

// Save upserts the serialized cart record for a session
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	record := CartRecord{
		SessionID: key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save cart record: %w", err)
	}
	return nil
}

// Delete removes the cart record for a session
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&CartRecord{}, "session_id = ?", key).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart record: %w", err)
	}
	return nil
}
