package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens one server span per request through otelgin. Spans are named
// "METHOD route", e.g. "GET /api/v1/hr/employees/:id".
func Tracing(serviceName string, provider trace.TracerProvider) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithTracerProvider(provider))
}

// SpanEnricher must run after Tracing. When the rest of the chain returns,
// the span is still open: it gets the request id and, for authenticated
// calls, the user id and role. A response of 400 or above marks it failed.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if claims := GetJWTClaims(c); claims != nil {
			span.SetAttributes(
				attribute.Int64("user_id", claims.UserID),
				attribute.String("user_role", claims.Role),
			)
		}

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
