// Package memory provides an in-memory object store for tests.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"catalog-backend/application/ports"
	appErrors "catalog-backend/pkg/errors"
)

// ObjectStore keeps objects in a map keyed by bucket and key.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewObjectStore creates an empty in-memory object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string][]byte),
	}
}

// Put stores an object.
func (s *ObjectStore) Put(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[bucket+"/"+key] = data
}

// Get streams a stored object; absent objects surface as source not found.
func (s *ObjectStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, appErrors.NewSourceNotFoundError(bucket, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ ports.ObjectStore = (*ObjectStore)(nil)
