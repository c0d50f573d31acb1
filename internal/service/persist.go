package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
)

// defaultPersistTimeout bounds repository calls when no timeout is supplied.
const defaultPersistTimeout = 5 * time.Second

// persistCtx derives a bounded context for a repository call. Services never
// block indefinitely on the database; an expired deadline surfaces as
// ErrPersistenceTimeout through mapRepoErr.
func persistCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// mapRepoErr translates persistence errors into the domain taxonomy. Failed
// writes are surfaced, never retried.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	// The users table is the only one with unique indexes, so a duplicated
	// key means a registration lost the check-then-create race.
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateEmail
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.ErrPersistenceTimeout
	default:
		return err
	}
}
