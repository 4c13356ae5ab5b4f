package kit

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	transportKey ctxKey = iota
	requestIDKey
)

// WithTransport tags ctx with the transport a request arrived on ("http", "mcp").
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey, transport)
}

// GetTransport returns the transport tag, "http" when none was set.
func GetTransport(ctx context.Context) string {
	if t, ok := ctx.Value(transportKey).(string); ok {
		return t
	}
	return "http"
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// NewRequestID returns a random request identifier.
func NewRequestID() string {
	return uuid.NewString()
}
