package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps engine errors onto gRPC status codes. Unrecognised errors
// become Internal without leaking their text.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, common.ErrUnknownParticipant), errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInvalidMembership), errors.Is(err, common.ErrEmptyContent):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotAParticipant):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrConflictRetry):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, common.ErrBackendUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// degradable reports whether a failed read should be answered with an
// empty degraded result instead of an error.
func degradable(err error) bool {
	return errors.Is(err, common.ErrBackendUnavailable)
}
