package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	rpc.ChatService_Ping_FullMethodName:         true,
	rpc.ChatService_RegisterUser_FullMethodName: true,
	rpc.ChatService_GetSalt_FullMethodName:      true,
	rpc.ChatService_Login_FullMethodName:        true,
	rpc.ChatService_RefreshToken_FullMethodName: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		// the client refreshes on exactly this message
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, UserIDKey, userID)
	return handler(ctx, req)
}

func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.requestTimeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	log := s.logger.With("request_id", uuid.NewString(), "method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		log.Info(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "rpc", append(args, "error", err)...)
	default:
		log.Warn(ctx, "rpc", append(args, "error", err)...)
	}
	return resp, err
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}
