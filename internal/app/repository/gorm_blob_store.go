package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormBlobStore struct {
	db *gorm.DB
}

// NewGormBlobStore keeps blobs as rows of the cart_snapshots table.
func NewGormBlobStore(db *gorm.DB) BlobStore {
	return &gormBlobStore{db: db}
}

func (s *gormBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var snapshot model.CartSnapshot
	err := s.db.WithContext(ctx).Where("snapshot_key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	return []byte(snapshot.Data), nil
}

func (s *gormBlobStore) Put(ctx context.Context, key string, data []byte) error {
	snapshot := model.CartSnapshot{
		Key:       key,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("snapshot upsert failed: %w", err)
	}
	return nil
}
