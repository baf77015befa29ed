// Package common defines shared constants and sentinel errors used across
// client and server layers of GophChat. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrAlreadyExists  = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Conversation engine errors.
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidMembership  = errors.New("invalid membership")
	ErrEmptyContent       = errors.New("empty content")
	ErrNotAParticipant    = errors.New("not a participant")

	// ErrConflictRetry signals that a concurrent writer won a uniqueness race;
	// the caller is expected to re-read instead of failing.
	ErrConflictRetry = errors.New("conflict, retry")

	// ErrBackendUnavailable is returned when storage cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
