package util

import (
	"context"

	"github.com/gin-gonic/gin"
)

type requestIDKey struct{}

// RequestIDHeader carries the request id in and out of the service
const RequestIDHeader = "X-Request-ID"

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestIDFromContext returns the request id, or "" if none was set
func GetRequestIDFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		ctx = ginCtx.Request.Context()
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
