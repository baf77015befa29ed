package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsUnavailable reports whether err means the database could not be reached
// or dropped the connection, as opposed to rejecting the statement.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, common.ErrBackendUnavailable) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, 57P0x: operator intervention, 53300: too many connections
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0") || pgErr.Code == "53300"
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify maps driver errors onto the shared sentinels so services can
// branch with errors.Is. Unrecognised errors are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrConflictRetry), errors.Is(err, common.ErrBackendUnavailable):
		return err
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", common.ErrConflictRetry, err)
	case IsUnavailable(err):
		return fmt.Errorf("%w: %w", common.ErrBackendUnavailable, err)
	default:
		return err
	}
}
