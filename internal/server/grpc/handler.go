package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *rpc.RegisterUserRequest) (*rpc.RegisterUserResponse, error) {
	if req.Username == "" || len(req.Salt) == 0 || len(req.Verifier) == 0 {
		return nil, status.Error(codes.InvalidArgument, "username, salt and verifier are required")
	}

	user, profile, err := s.svc.Users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "profile_id", profile.ID)
	return &rpc.RegisterUserResponse{UserId: user.ID, Profile: profileToRPC(profile)}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *rpc.GetSaltRequest) (*rpc.GetSaltResponse, error) {
	salt, err := s.svc.Users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	tokens, err := s.svc.Users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	tokens, err := s.svc.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}
