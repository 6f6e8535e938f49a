package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backupapp "github.com/bizledger/backend/internal/application/backup"
)

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()

	payload := []byte("snapshot")
	require.NoError(t, store.Put(ctx, "backups/b.json", payload, "application/json"))
	require.NoError(t, store.Put(ctx, "backups/a.json", []byte("older"), "application/json"))
	require.NoError(t, store.Put(ctx, "other/c.json", []byte("x"), "application/json"))

	payload[0] = 'S'
	got, err := store.Get(ctx, "backups/b.json")
	require.NoError(t, err)
	assert.Equal(t, "snapshot", string(got), "stored data must not alias the caller's slice")

	_, err = store.Get(ctx, "backups/missing.json")
	assert.True(t, errors.Is(err, backupapp.ErrBlobNotFound))

	blobs, err := store.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, "backups/a.json", blobs[0].Key)
	assert.Equal(t, int64(8), blobs[1].Size)

	assert.Error(t, store.Put(ctx, "", nil, ""))
}
