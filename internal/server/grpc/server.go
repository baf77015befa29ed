// Package grpc exposes the chat engine as the gophchat.ChatService gRPC
// service.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, *models.Profile, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
}

type ProfileService interface {
	ForIdentity(ctx context.Context, identity string) (*models.Profile, error)
	Search(ctx context.Context, term string) ([]*models.Profile, error)
}

type ConversationService interface {
	ResolveDirect(ctx context.Context, a, b int64) (*models.Conversation, error)
	ResolveGroupAs(ctx context.Context, actorID int64, participantIDs []int64, groupRef int64) (*models.Conversation, error)
	StartGroup(ctx context.Context, creatorID int64, name string, memberIDs []int64) (*models.Conversation, error)
	Open(ctx context.Context, selfID, conversationID int64) (*services.SessionContext, error)
}

type MessageService interface {
	Append(ctx context.Context, conversationID, fromID int64, toID *int64, contents string) (*models.Message, error)
	Send(ctx context.Context, sc *services.SessionContext, contents string) (*models.Message, error)
	History(ctx context.Context, conversationID int64) ([]*models.HistoryEntry, error)
}

type IndexService interface {
	ListFor(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
}

// Services groups the engine components the server delegates to.
type Services struct {
	Users         UserService
	Profiles      ProfileService
	Conversations ConversationService
	Messages      MessageService
	Index         IndexService
}

type GRPCServer struct {
	rpc.UnimplementedChatServiceServer
	address        string
	svc            Services
	logger         logging.Logger
	jwtSecret      []byte
	requestTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		svc:            svc,
		jwtSecret:      []byte(secretKey),
		requestTimeout: requestTimeout,
	}
}

// NewServer returns a grpc.Server with the interceptor chain installed and
// the chat service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.timeoutInterceptor,
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)
	rpc.RegisterChatServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
