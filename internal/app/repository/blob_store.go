package repository

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrBlobNotFound     = errors.New("blob not found")
	ErrStoreUnavailable = errors.New("blob store unavailable")
)

// BlobStore keeps opaque byte blobs under string keys.
// Get returns ErrBlobNotFound for a key that was never written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

type memoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() BlobStore {
	return &memoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *memoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *memoryBlobStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

// unavailableBlobStore stands in when no durable backend could be reached.
type unavailableBlobStore struct{}

func NewUnavailableBlobStore() BlobStore {
	return unavailableBlobStore{}
}

func (unavailableBlobStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrStoreUnavailable
}

func (unavailableBlobStore) Put(context.Context, string, []byte) error {
	return ErrStoreUnavailable
}
