package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the client supplied key of a create request
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 200

// Idempotency rejects a POST whose Idempotency-Key was already seen for the
// same user and path within ttl. The key is held while the request runs and
// released again when the response is an error, so a corrected retry can
// reuse it. Requests without the header pass through. A store failure lets
// the request through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				"Request validation failed", GetRequestID(c), []dto.ValidationDetail{
					{Field: IdempotencyKeyHeader, Message: fmt.Sprintf("Must be at most %d characters", maxIdempotencyKeyLength)},
				}))
			return
		}

		var userID int64
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
		}
		scoped := fmt.Sprintf("%d:%s:%s", userID, c.FullPath(), key)

		fresh, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Error("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			logger.GetGinLogger(c).Warn("Duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// Request context may already be cancelled by the client
			if err := store.Release(context.WithoutCancel(c.Request.Context()), scoped); err != nil {
				logger.GetGinLogger(c).Error("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
