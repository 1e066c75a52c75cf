package async

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context (so the handler outlives the HTTP request
// that spawned it) and handles errors and panics.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	// Detach from the request context but preserve the logger
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
