package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/bizledger/backend/internal/infrastructure/config"
)

// ============================================================================
// Unit Tests (no external dependencies)
// ============================================================================

func TestNewS3BlobStore_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3BlobStore(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3BlobStore(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3BlobStore(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3BlobStore(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates store", func(t *testing.T) {
		store, err := NewS3BlobStore(&config.StorageConfig{
			Bucket:       "ledger-backups",
			AccessKey:    "k",
			SecretKey:    "s",
			Endpoint:     "localhost:9000",
			UsePathStyle: true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "ledger-backups", store.GetBucket())
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		want     string
	}{
		{"empty means aws", "", false, ""},
		{"adds http", "localhost:9000", false, "http://localhost:9000"},
		{"adds https", "minio.internal", true, "https://minio.internal"},
		{"keeps scheme", "https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestS3BlobStore_EmptyKey(t *testing.T) {
	store, err := NewS3BlobStore(&config.StorageConfig{
		Bucket: "b", AccessKey: "k", SecretKey: "s", Endpoint: "http://localhost:9000",
	})
	require.NoError(t, err)

	err = store.Put(context.Background(), "", []byte("x"), "text/plain")
	assert.Contains(t, err.Error(), "storage key is required")

	_, err = store.Get(context.Background(), "")
	assert.Contains(t, err.Error(), "storage key is required")
}

// ============================================================================
// Integration Tests (require MinIO or another S3-compatible endpoint)
// ============================================================================

func TestIntegration_PutGetList(t *testing.T) {
	endpoint := os.Getenv("BIZ_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping integration test. Set BIZ_TEST_S3_ENDPOINT to run against an S3-compatible endpoint.")
	}

	store, err := NewS3BlobStore(&config.StorageConfig{
		Bucket:       "bizledger-integration",
		AccessKey:    os.Getenv("BIZ_TEST_S3_ACCESS_KEY"),
		SecretKey:    os.Getenv("BIZ_TEST_S3_SECRET_KEY"),
		Endpoint:     endpoint,
		UsePathStyle: true,
	}, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.EnsureBucket(ctx))
	require.NoError(t, store.Put(ctx, "it/one.json", []byte(`{"a":1}`), "application/json"))

	data, err := store.Get(ctx, "it/one.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	blobs, err := store.List(ctx, "it/")
	require.NoError(t, err)
	assert.NotEmpty(t, blobs)
}
