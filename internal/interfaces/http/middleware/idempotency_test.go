package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bizledger/backend/internal/infrastructure/cache"
	"github.com/bizledger/backend/internal/interfaces/http/dto"
)

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

func TestIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	var created int
	router := gin.New()
	router.Use(Idempotency(store, time.Hour))
	router.POST("/api/v1/finance/transactions", func(c *gin.Context) {
		created++
		c.Status(http.StatusCreated)
	})
	router.POST("/api/v1/finance/invoices", func(c *gin.Context) {
		created++
		c.Status(http.StatusCreated)
	})

	post := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post("/api/v1/finance/transactions", "k-1").Code)

	replay := post("/api/v1/finance/transactions", "k-1")
	assert.Equal(t, http.StatusConflict, replay.Code)
	assert.Contains(t, replay.Body.String(), dto.ErrCodeDuplicateRequest)

	// Same key on another route is a different request
	assert.Equal(t, http.StatusCreated, post("/api/v1/finance/invoices", "k-1").Code)

	// No key, no deduplication
	assert.Equal(t, http.StatusCreated, post("/api/v1/finance/transactions", "").Code)
	assert.Equal(t, http.StatusCreated, post("/api/v1/finance/transactions", "").Code)

	assert.Equal(t, http.StatusBadRequest, post("/api/v1/finance/transactions", strings.Repeat("k", 201)).Code)

	assert.Equal(t, 4, created)
}

func TestIdempotency_StoreFailureLetsRequestThrough(t *testing.T) {
	store := new(MockIdempotencyStore)
	store.On("MarkProcessed", mock.Anything, "0:/items:k-1", time.Minute).
		Return(false, errors.New("redis down"))

	router := gin.New()
	router.Use(Idempotency(store, time.Minute))
	router.POST("/items", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Header.Set(IdempotencyKeyHeader, "k-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestIdempotency_FailedRequestReleasesKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	var calls int
	router := gin.New()
	router.Use(Idempotency(store, time.Hour))
	router.POST("/api/v1/finance/transactions", func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusCreated)
	})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/finance/transactions", nil)
		req.Header.Set(IdempotencyKeyHeader, "k1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusInternalServerError, post())
	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, 2, calls)

	// Accepted now, so the key stays taken
	assert.Equal(t, http.StatusConflict, post())
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ReleaseFailureIsLogged(t *testing.T) {
	store := new(MockIdempotencyStore)
	store.On("MarkProcessed", mock.Anything, "0:/items:k-1", time.Minute).Return(true, nil)
	store.On("Release", mock.Anything, "0:/items:k-1").Return(errors.New("redis down"))

	router := gin.New()
	router.Use(Idempotency(store, time.Minute))
	router.POST("/items", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Header.Set(IdempotencyKeyHeader, "k-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertExpectations(t)
}
