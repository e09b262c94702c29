package httputil

import (
	"context"
	"net/http"
)

type requestIDKey struct{}

// WithRequestID returns r with id stored in its context
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(ContextWithRequestID(r.Context(), id))
}

// ContextWithRequestID stores id in ctx
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the request ID assigned by the RequestID middleware,
// or "" outside a request
func GetRequestID(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

// RequestIDFromContext returns the request ID stored in ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
