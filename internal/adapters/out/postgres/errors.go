package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// StorageError wraps a driver failure for op. Timeouts and connection
// failures are marked retryable. A nil err yields nil.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsRetryable(err) {
		return errs.NewRetryableStorageError(op, err)
	}
	return errs.NewStorageError(op, err)
}

// IsRetryable reports whether err is a timeout or a connectivity failure.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint or index. An empty name matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
