package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/internal/repository"
)

// withRetry applies the store-contention policy: one retry for transient
// failures, then a generic unavailable error. Never downgraded to success.
func withRetry(fn func() error) error {
	err := fn()
	if err == nil || !repository.IsTransient(err) {
		return err
	}
	if err = fn(); err != nil && repository.IsTransient(err) {
		return errs.ErrUnavailable
	}
	return err
}

// dispatch sends a workflow event without affecting the committed state
// change. Failures are logged and swallowed.
func dispatch(ctx context.Context, d notify.Dispatcher, log *zap.Logger, event notify.Event) {
	if err := d.Dispatch(ctx, event); err != nil {
		log.Warn("notification dispatch failed",
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
	}
}
