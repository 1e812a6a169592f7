package utils

import (
	"context"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// SetRequestID stores the request id for handlers and loggers downstream.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID returns the request id set by the middleware, if any.
func GetRequestID(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	return id, ok
}
