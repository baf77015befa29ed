package grpc

import (
	"github.com/dmitrijs2005/gophchat/internal/rpc"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
)

func profileToRPC(p *models.Profile) *rpc.Profile {
	if p == nil {
		return nil
	}
	return &rpc.Profile{Id: p.ID, Username: p.Username, Bio: p.Bio}
}

func conversationToRPC(c *models.Conversation) *rpc.Conversation {
	if c == nil {
		return nil
	}
	out := &rpc.Conversation{Id: c.ID, Kind: string(c.Kind), Name: c.Name, CreatedAt: c.CreatedAt}
	if c.GroupRef != nil {
		out.GroupId = *c.GroupRef
	}
	return out
}

func summaryToRPC(s models.ConversationSummary) *rpc.ConversationSummary {
	return &rpc.ConversationSummary{
		Conversation:  conversationToRPC(&s.Conversation),
		DisplayName:   s.DisplayName,
		LastMessageAt: s.LastMessageAt,
		Degraded:      s.Degraded,
	}
}

func sessionToRPC(sc *services.SessionContext) *rpc.Session {
	out := &rpc.Session{
		ConversationId: sc.ConversationID,
		Kind:           string(sc.Kind),
		SelfId:         sc.SelfID,
		Participants:   sc.Participants,
	}
	if sc.CounterpartID != nil {
		out.CounterpartId = *sc.CounterpartID
	}
	return out
}

func messageToRPC(m *models.Message, sender string) *rpc.Message {
	out := &rpc.Message{
		Id:             m.ID,
		ConversationId: m.ConversationID,
		FromId:         m.FromID,
		SenderName:     sender,
		Contents:       m.Contents,
		CreatedAt:      m.CreatedAt,
	}
	if m.ToID != nil {
		out.ToId = *m.ToID
	}
	return out
}
