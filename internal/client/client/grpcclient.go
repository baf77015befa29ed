package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.ChatServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, rotates the token pair once and replays the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" || method == rpc.ChatService_RefreshToken_FullMethodName {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewGophChatClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewChatServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, key []byte) error {
	req := &rpc.RegisterUserRequest{Username: userName, Salt: salt, Verifier: key}
	if _, err := s.client.RegisterUser(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	resp, err := s.client.GetSalt(ctx, &rpc.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, key []byte) error {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: userName, VerifierCandidate: key})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout forgets the token pair. The server keeps no session to end.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Me(ctx context.Context) (*models.Profile, error) {
	resp, err := s.client.Me(ctx, &rpc.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	p := profileFromRPC(resp.Profile)
	return &p, nil
}

func (s *GRPCClient) SearchProfiles(ctx context.Context, term string) (models.Page[models.Profile], error) {
	resp, err := s.client.SearchProfiles(ctx, &rpc.SearchProfilesRequest{Term: term})
	if err != nil {
		return models.Page[models.Profile]{}, s.mapError(err)
	}
	page := models.Page[models.Profile]{Degraded: resp.Degraded, Warning: resp.Warning}
	for _, p := range resp.Profiles {
		page.Items = append(page.Items, profileFromRPC(p))
	}
	return page, nil
}

func (s *GRPCClient) ResolveDirect(ctx context.Context, profileID int64) (*models.Conversation, error) {
	resp, err := s.client.ResolveDirect(ctx, &rpc.ResolveDirectRequest{ProfileId: profileID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return conversationFromRPC(resp.Conversation), nil
}

func (s *GRPCClient) StartGroup(ctx context.Context, name string, memberIDs []int64) (*models.Conversation, error) {
	resp, err := s.client.StartGroup(ctx, &rpc.StartGroupRequest{Name: name, MemberIds: memberIDs})
	if err != nil {
		return nil, s.mapError(err)
	}
	return conversationFromRPC(resp.Conversation), nil
}

func (s *GRPCClient) ResolveGroup(ctx context.Context, groupID int64, participantIDs []int64) (*models.Conversation, error) {
	resp, err := s.client.ResolveGroup(ctx, &rpc.ResolveGroupRequest{GroupId: groupID, ParticipantIds: participantIDs})
	if err != nil {
		return nil, s.mapError(err)
	}
	return conversationFromRPC(resp.Conversation), nil
}

func (s *GRPCClient) Open(ctx context.Context, conversationID int64) (*models.Session, error) {
	resp, err := s.client.OpenConversation(ctx, &rpc.OpenConversationRequest{ConversationId: conversationID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return sessionFromRPC(resp.Session), nil
}

func (s *GRPCClient) ListConversations(ctx context.Context) (models.Page[models.Summary], error) {
	resp, err := s.client.ListConversations(ctx, &rpc.ListConversationsRequest{})
	if err != nil {
		return models.Page[models.Summary]{}, s.mapError(err)
	}
	page := models.Page[models.Summary]{Degraded: resp.Degraded, Warning: resp.Warning}
	for _, c := range resp.Conversations {
		page.Items = append(page.Items, summaryFromRPC(c))
	}
	return page, nil
}

func (s *GRPCClient) Send(ctx context.Context, conversationID int64, toID int64, contents string) (*models.Message, error) {
	resp, err := s.client.SendMessage(ctx, &rpc.SendMessageRequest{ConversationId: conversationID, ToId: toID, Contents: contents})
	if err != nil {
		return nil, s.mapError(err)
	}
	m := messageFromRPC(resp.Message)
	return &m, nil
}

func (s *GRPCClient) History(ctx context.Context, conversationID int64) (models.Page[models.Message], error) {
	resp, err := s.client.History(ctx, &rpc.HistoryRequest{ConversationId: conversationID})
	if err != nil {
		return models.Page[models.Message]{}, s.mapError(err)
	}
	page := models.Page[models.Message]{Degraded: resp.Degraded, Warning: resp.Warning}
	for _, m := range resp.Messages {
		page.Items = append(page.Items, messageFromRPC(m))
	}
	return page, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.InvalidArgument:
		sentinel = ErrInvalidArgument
	case codes.Aborted:
		sentinel = ErrConflict
	case codes.AlreadyExists:
		sentinel = ErrAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	if st.Message() == "" || st.Message() == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
