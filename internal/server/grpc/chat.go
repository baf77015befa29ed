package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const degradedWarning = "storage is unavailable, showing partial results"

// caller resolves the profile of the authenticated user, creating it if it
// is missing.
func (s *GRPCServer) caller(ctx context.Context) (*models.Profile, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	p, err := s.svc.Profiles.ForIdentity(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return p, nil
}

func (s *GRPCServer) Me(ctx context.Context, req *rpc.MeRequest) (*rpc.MeResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	return &rpc.MeResponse{Profile: profileToRPC(me)}, nil
}

func (s *GRPCServer) SearchProfiles(ctx context.Context, req *rpc.SearchProfilesRequest) (*rpc.SearchProfilesResponse, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	found, err := s.svc.Profiles.Search(ctx, req.Term)
	if err != nil {
		if degradable(err) {
			s.logger.Warn(ctx, "profile search degraded", "error", err)
			return &rpc.SearchProfilesResponse{Profiles: []*rpc.Profile{}, Degraded: true, Warning: degradedWarning}, nil
		}
		return nil, toStatus(err)
	}

	out := make([]*rpc.Profile, 0, len(found))
	for _, p := range found {
		out = append(out, profileToRPC(p))
	}
	return &rpc.SearchProfilesResponse{Profiles: out}, nil
}

func (s *GRPCServer) ResolveDirect(ctx context.Context, req *rpc.ResolveDirectRequest) (*rpc.ConversationResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.svc.Conversations.ResolveDirect(ctx, me.ID, req.ProfileId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ConversationResponse{Conversation: conversationToRPC(c)}, nil
}

func (s *GRPCServer) StartGroup(ctx context.Context, req *rpc.StartGroupRequest) (*rpc.ConversationResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.svc.Conversations.StartGroup(ctx, me.ID, req.Name, req.MemberIds)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ConversationResponse{Conversation: conversationToRPC(c)}, nil
}

// ResolveGroup repairs membership of a group conversation the caller
// already belongs to, adding ParticipantIds where missing.
func (s *GRPCServer) ResolveGroup(ctx context.Context, req *rpc.ResolveGroupRequest) (*rpc.ConversationResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.svc.Conversations.ResolveGroupAs(ctx, me.ID, req.ParticipantIds, req.GroupId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ConversationResponse{Conversation: conversationToRPC(c)}, nil
}

func (s *GRPCServer) OpenConversation(ctx context.Context, req *rpc.OpenConversationRequest) (*rpc.OpenConversationResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := s.svc.Conversations.Open(ctx, me.ID, req.ConversationId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.OpenConversationResponse{Session: sessionToRPC(sc)}, nil
}

func (s *GRPCServer) ListConversations(ctx context.Context, req *rpc.ListConversationsRequest) (*rpc.ListConversationsResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.svc.Index.ListFor(ctx, me.ID)
	if err != nil {
		if degradable(err) {
			s.logger.Warn(ctx, "chat list degraded", "profile_id", me.ID, "error", err)
			return &rpc.ListConversationsResponse{Conversations: []*rpc.ConversationSummary{}, Degraded: true, Warning: degradedWarning}, nil
		}
		return nil, toStatus(err)
	}

	resp := &rpc.ListConversationsResponse{Conversations: make([]*rpc.ConversationSummary, 0, len(list))}
	for _, summary := range list {
		if summary.Degraded {
			resp.Degraded = true
			resp.Warning = "some conversation names could not be loaded"
		}
		resp.Conversations = append(resp.Conversations, summaryToRPC(summary))
	}
	return resp, nil
}

func (s *GRPCServer) SendMessage(ctx context.Context, req *rpc.SendMessageRequest) (*rpc.SendMessageResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	var m *models.Message
	if req.ToId != 0 {
		to := req.ToId
		m, err = s.svc.Messages.Append(ctx, req.ConversationId, me.ID, &to, req.Contents)
	} else {
		sc, openErr := s.svc.Conversations.Open(ctx, me.ID, req.ConversationId)
		if openErr != nil {
			return nil, toStatus(openErr)
		}
		m, err = s.svc.Messages.Send(ctx, sc, req.Contents)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SendMessageResponse{Message: messageToRPC(m, me.Username)}, nil
}

// History is only served to members of the conversation.
func (s *GRPCServer) History(ctx context.Context, req *rpc.HistoryRequest) (*rpc.HistoryResponse, error) {
	me, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.svc.Conversations.Open(ctx, me.ID, req.ConversationId); err != nil {
		if degradable(err) {
			return s.degradedHistory(ctx, err), nil
		}
		return nil, toStatus(err)
	}

	entries, err := s.svc.Messages.History(ctx, req.ConversationId)
	if err != nil {
		if degradable(err) {
			return s.degradedHistory(ctx, err), nil
		}
		return nil, toStatus(err)
	}

	out := make([]*rpc.Message, 0, len(entries))
	for _, e := range entries {
		out = append(out, messageToRPC(&e.Message, e.SenderName))
	}
	return &rpc.HistoryResponse{Messages: out}, nil
}

func (s *GRPCServer) degradedHistory(ctx context.Context, err error) *rpc.HistoryResponse {
	s.logger.Warn(ctx, "history degraded", "error", err)
	return &rpc.HistoryResponse{Messages: []*rpc.Message{}, Degraded: true, Warning: degradedWarning}
}
