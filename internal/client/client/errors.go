package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("not a participant")
	ErrConflict        = errors.New("conflict, try again")
	ErrAlreadyExists   = errors.New("already exists")
)
