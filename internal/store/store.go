package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pm-dashboard-backend/internal/model"
)

// Store is the persistence port for the asset collection and the single
// endpoint-URL setting. Handlers and the sync client depend on this
// interface, never on gorm directly, so tests can substitute a mock.
type Store interface {
	// LoadAssets returns the full collection. An empty store is seeded with
	// the default collection first, so callers always receive usable data.
	LoadAssets(ctx context.Context) ([]model.AssetRecord, error)
	// ReplaceAssets atomically replaces the whole persisted collection.
	ReplaceAssets(ctx context.Context, records []model.AssetRecord) error
	// EndpointURL returns the configured remote sync endpoint, "" when unset.
	EndpointURL(ctx context.Context) (string, error)
	// SetEndpointURL persists the remote sync endpoint.
	SetEndpointURL(ctx context.Context, url string) error
	// DB exposes the underlying handle for auxiliary tables (subscriptions).
	DB() *gorm.DB
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) LoadAssets(ctx context.Context) ([]model.AssetRecord, error) {
	var records []model.AssetRecord
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load asset records: %w", err)
	}
	if len(records) > 0 {
		return records, nil
	}

	// First run (or wiped store): install the documented seed collection so
	// the dashboard never starts empty.
	seeds := model.SeedAssets()
	if err := s.db.WithContext(ctx).Create(&seeds).Error; err != nil {
		log.Printf("Warning: could not persist seed records: %v", err)
	}
	return seeds, nil
}

func (s *gormStore) ReplaceAssets(ctx context.Context, records []model.AssetRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.AssetRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear asset records: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to write asset records: %w", err)
		}
		return nil
	})
}

func (s *gormStore) EndpointURL(ctx context.Context) (string, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", model.SettingEndpointURL).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read endpoint setting: %w", err)
	}
	return setting.Value, nil
}

func (s *gormStore) SetEndpointURL(ctx context.Context, url string) error {
	setting := model.Setting{Key: model.SettingEndpointURL, Value: url}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to persist endpoint setting: %w", err)
	}
	return nil
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}
