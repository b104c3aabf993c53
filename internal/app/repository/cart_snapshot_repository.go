package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/pkg/logger"
)

// CartSnapshotRepository mirrors the cart items to a blob store.
// Neither method reports failure: Load degrades to an empty cart and Save to
// a logged no-op.
type CartSnapshotRepository interface {
	Load(ctx context.Context) []model.LineItem
	Save(ctx context.Context, items []model.LineItem)
}

type cartSnapshotRepository struct {
	store BlobStore
	key   string
}

func NewCartSnapshotRepository(store BlobStore, key string) CartSnapshotRepository {
	return &cartSnapshotRepository{store: store, key: key}
}

func (r *cartSnapshotRepository) Load(ctx context.Context) []model.LineItem {
	logger.Debug("Loading cart snapshot", map[string]interface{}{
		"key": r.key,
	})

	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrBlobNotFound) {
		logger.Debug("No cart snapshot stored", map[string]interface{}{
			"key": r.key,
		})
		return []model.LineItem{}
	}
	if err != nil {
		logger.Warn("Cart snapshot unavailable, starting empty", map[string]interface{}{
			"key":   r.key,
			"error": err.Error(),
		})
		return []model.LineItem{}
	}

	items, err := DecodeLineItems(data)
	if err != nil {
		logger.Warn("Malformed cart snapshot, starting empty", map[string]interface{}{
			"key":   r.key,
			"error": err.Error(),
			"size":  len(data),
		})
		return []model.LineItem{}
	}

	logger.Debug("Cart snapshot loaded", map[string]interface{}{
		"key":   r.key,
		"count": len(items),
	})
	return items
}

func (r *cartSnapshotRepository) Save(ctx context.Context, items []model.LineItem) {
	data, err := EncodeLineItems(items)
	if err != nil {
		logger.Error("Failed to encode cart snapshot", err, map[string]interface{}{
			"key": r.key,
		})
		return
	}

	if err := r.store.Put(ctx, r.key, data); err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			logger.Debug("Cart snapshot not saved: no durable store", map[string]interface{}{
				"key": r.key,
			})
			return
		}
		logger.Error("Failed to save cart snapshot", err, map[string]interface{}{
			"key":   r.key,
			"count": len(items),
		})
		return
	}

	logger.Debug("Cart snapshot saved", map[string]interface{}{
		"key":   r.key,
		"count": len(items),
	})
}

// EncodeLineItems writes items as a JSON array. A nil slice encodes as [].
func EncodeLineItems(items []model.LineItem) ([]byte, error) {
	if items == nil {
		items = []model.LineItem{}
	}
	return json.Marshal(items)
}

// DecodeLineItems parses a JSON array of line items and rejects snapshots
// that no cart could have produced.
func DecodeLineItems(data []byte) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if items == nil {
		return nil, errors.New("decode snapshot: not an array")
	}

	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if !item.Valid() {
			return nil, fmt.Errorf("decode snapshot: invalid line item %d", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("decode snapshot: duplicate line item %d", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}
