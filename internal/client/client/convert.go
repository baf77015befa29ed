package client

import (
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/rpc"
)

func profileFromRPC(p *rpc.Profile) models.Profile {
	if p == nil {
		return models.Profile{}
	}
	return models.Profile{ID: p.Id, Username: p.Username, Bio: p.Bio}
}

func conversationFromRPC(c *rpc.Conversation) *models.Conversation {
	if c == nil {
		return nil
	}
	return &models.Conversation{
		ID:        c.Id,
		Kind:      models.ConversationKind(c.Kind),
		Name:      c.Name,
		GroupID:   c.GroupId,
		CreatedAt: c.CreatedAt,
	}
}

func summaryFromRPC(s *rpc.ConversationSummary) models.Summary {
	out := models.Summary{DisplayName: s.DisplayName, LastMessageAt: s.LastMessageAt, Degraded: s.Degraded}
	if c := conversationFromRPC(s.Conversation); c != nil {
		out.Conversation = *c
	}
	return out
}

func sessionFromRPC(s *rpc.Session) *models.Session {
	if s == nil {
		return nil
	}
	return &models.Session{
		ConversationID: s.ConversationId,
		Kind:           models.ConversationKind(s.Kind),
		SelfID:         s.SelfId,
		CounterpartID:  s.CounterpartId,
		Participants:   s.Participants,
	}
}

func messageFromRPC(m *rpc.Message) models.Message {
	if m == nil {
		return models.Message{}
	}
	return models.Message{
		ID:             m.Id,
		ConversationID: m.ConversationId,
		FromID:         m.FromId,
		ToID:           m.ToId,
		SenderName:     m.SenderName,
		Contents:       m.Contents,
		CreatedAt:      m.CreatedAt,
	}
}
