package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/grocery-cart/config"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/pkg/logger"
	"github.com/ikkim/grocery-cart/pkg/redis"
	"gorm.io/gorm"
)

const redisKeyPrefix = "grocery:"

var ErrUnknownBackend = errors.New("unknown cart storage backend")

// Open builds the blob store named by cfg.Cart.StorageBackend. sqlDB backs
// the postgres backend and may be nil otherwise.
func Open(ctx context.Context, cfg *config.Config, sqlDB *gorm.DB) (repository.BlobStore, error) {
	backend := cfg.Cart.StorageBackend
	logger.Info("Opening cart snapshot store", map[string]interface{}{
		"backend": backend,
	})

	switch backend {
	case config.StorageRedis:
		if err := redis.Init(&cfg.Redis); err != nil {
			return nil, err
		}
		return repository.NewRedisBlobStore(redis.GetClient(), redisKeyPrefix), nil

	case config.StoragePostgres:
		if sqlDB == nil {
			return nil, fmt.Errorf("%s backend needs a database connection", backend)
		}
		return repository.NewGormBlobStore(sqlDB), nil

	case config.StorageS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("%s backend needs AWS_S3_BUCKET", backend)
		}
		client, err := NewS3Client(ctx, cfg.S3.Region, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(client, cfg.S3.Bucket, cfg.S3.Prefix), nil

	case config.StorageMemory:
		return repository.NewMemoryBlobStore(), nil

	case config.StorageNone:
		return repository.NewUnavailableBlobStore(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// OpenOrDegrade is Open, falling back to a store that is never available so
// the cart keeps working in memory.
func OpenOrDegrade(ctx context.Context, cfg *config.Config, sqlDB *gorm.DB) repository.BlobStore {
	store, err := Open(ctx, cfg, sqlDB)
	if err != nil {
		logger.Warn("Cart snapshots disabled", map[string]interface{}{
			"backend": cfg.Cart.StorageBackend,
			"error":   err.Error(),
		})
		return repository.NewUnavailableBlobStore()
	}
	return store
}
