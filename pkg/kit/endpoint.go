// CLAUDE:SUMMARY Transport-agnostic endpoints: HTTP handlers and MCP tools both dispatch to the same Endpoint, wrapped by shared middleware.
package kit

import (
	"context"
	"log/slog"
	"time"
)

// Endpoint is one action (classify, classify batch, list locales) callable
// from any transport.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

// WithRequestIDs assigns a request ID to calls that arrive without one.
func WithRequestIDs() Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			if GetRequestID(ctx) == "" {
				ctx = WithRequestID(ctx, NewRequestID())
			}
			return next(ctx, request)
		}
	}
}

// Logged logs every call of the endpoint named name at Debug, and failures
// at Warn.
func Logged(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", name,
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"elapsed", time.Since(start),
			}
			if err != nil {
				logger.Warn("endpoint failed", append(attrs, "error", err)...)
				return resp, err
			}
			logger.Debug("endpoint done", attrs...)
			return resp, nil
		}
	}
}
