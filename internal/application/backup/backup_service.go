// Package backup writes whole-store snapshots to a blob store and restores them.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/infrastructure/persistence/memory"
)

// ErrBlobNotFound is returned by a BlobStore when the key does not exist
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore stores opaque blobs by key
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns an error wrapping ErrBlobNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

// BlobInfo describes a stored blob
type BlobInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Snapshotter is the store being backed up
type Snapshotter interface {
	Snapshot(takenAt time.Time) *memory.Snapshot
	Restore(snap *memory.Snapshot) error
}

// Info describes one backup
type Info struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// RestoreResult reports what a restore loaded
type RestoreResult struct {
	ID      string         `json:"id"`
	TakenAt time.Time      `json:"takenAt"`
	Counts  map[string]int `json:"counts"`
}

const (
	idTimeLayout = "20060102T150405"
	extension    = ".json"
)

var idPattern = regexp.MustCompile(`^\d{8}T\d{6}-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Service creates, lists and restores backups
type Service struct {
	store  Snapshotter
	blobs  BlobStore
	prefix string
	clock  shared.Clock
	newID  func() uuid.UUID
}

// NewService creates a backup Service. prefix is prepended to every blob key.
func NewService(store Snapshotter, blobs BlobStore, prefix string, clock shared.Clock) *Service {
	return &Service{
		store:  store,
		blobs:  blobs,
		prefix: prefix,
		clock:  clock,
		newID:  uuid.New,
	}
}

func (s *Service) key(id string) string {
	return s.prefix + id + extension
}

// Create snapshots the store and uploads it
func (s *Service) Create(ctx context.Context) (*Info, error) {
	now := s.clock.Now().UTC()
	snap := s.store.Snapshot(now)

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	id := fmt.Sprintf("%s-%s", now.Format(idTimeLayout), s.newID())
	key := s.key(id)
	if err := s.blobs.Put(ctx, key, data, "application/json"); err != nil {
		logger.L(ctx).Error("Backup upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("upload backup %s: %w", id, err)
	}

	logger.L(ctx).Info("Backup created",
		zap.String("backup_id", id),
		zap.Int("bytes", len(data)),
	)
	return &Info{ID: id, Key: key, Size: int64(len(data)), CreatedAt: now}, nil
}

// List returns stored backups, newest first
func (s *Service) List(ctx context.Context) ([]Info, error) {
	blobs, err := s.blobs.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	out := make([]Info, 0, len(blobs))
	for _, b := range blobs {
		id := strings.TrimSuffix(strings.TrimPrefix(b.Key, s.prefix), extension)
		if !idPattern.MatchString(id) {
			continue
		}
		created, err := time.Parse(idTimeLayout, id[:len(idTimeLayout)])
		if err != nil {
			continue
		}
		out = append(out, Info{ID: id, Key: b.Key, Size: b.Size, CreatedAt: created})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Restore replaces the store contents with the backup. Id counters never
// move backwards, so ids issued after the backup are not reused.
func (s *Service) Restore(ctx context.Context, id string) (*RestoreResult, error) {
	if !idPattern.MatchString(id) {
		return nil, shared.Validation("malformed backup id %q", id)
	}

	data, err := s.blobs.Get(ctx, s.key(id))
	if errors.Is(err, ErrBlobNotFound) {
		return nil, shared.NotFoundBy("backup", "id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("download backup %s: %w", id, err)
	}

	var snap memory.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, shared.Validation("backup %s is not a valid snapshot: %v", id, err)
	}
	if err := s.store.Restore(&snap); err != nil {
		logger.L(ctx).Warn("Backup restore rejected", zap.String("backup_id", id), zap.Error(err))
		if shared.CodeOf(err) != "" {
			return nil, err
		}
		return nil, shared.Validation("backup %s cannot be restored: %v", id, err)
	}

	result := &RestoreResult{
		ID:      id,
		TakenAt: snap.TakenAt,
		Counts: map[string]int{
			"users":               len(snap.Users.Rows),
			"employees":           len(snap.Employees.Rows),
			"attendance":          len(snap.Attendance.Rows),
			"employeePayments":    len(snap.EmployeePayments.Rows),
			"transactions":        len(snap.Transactions.Rows),
			"invoices":            len(snap.Invoices.Rows),
			"companies":           len(snap.Companies.Rows),
			"companyTransactions": len(snap.CompanyTransactions.Rows),
		},
	}
	logger.L(ctx).Info("Backup restored", zap.String("backup_id", id), zap.Any("counts", result.Counts))
	return result, nil
}
