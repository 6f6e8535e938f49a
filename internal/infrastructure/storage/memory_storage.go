package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	backupapp "github.com/bizledger/backend/internal/application/backup"
)

// Ensure MemoryBlobStore implements BlobStore
var _ backupapp.BlobStore = (*MemoryBlobStore)(nil)

type memoryBlob struct {
	data         []byte
	lastModified time.Time
}

// MemoryBlobStore keeps blobs in process memory. Backups written to it do not
// survive a restart; it serves development and tests.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
	now   func() time.Time
}

// NewMemoryBlobStore creates an empty MemoryBlobStore
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs: make(map[string]memoryBlob),
		now:   time.Now,
	}
}

// Put stores a copy of data under key
func (s *MemoryBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = memoryBlob{data: buf, lastModified: s.now()}
	return nil
}

// Get returns a copy of the blob stored under key
func (s *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, backupapp.ErrBlobNotFound)
	}
	buf := make([]byte, len(b.data))
	copy(buf, b.data)
	return buf, nil
}

// List returns blobs whose key starts with prefix, ordered by key
func (s *MemoryBlobStore) List(_ context.Context, prefix string) ([]backupapp.BlobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backupapp.BlobInfo, 0, len(s.blobs))
	for key, b := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			out = append(out, backupapp.BlobInfo{Key: key, Size: int64(len(b.data)), LastModified: b.lastModified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
