package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

// SessionContext binds a caller to one open conversation. For direct
// conversations CounterpartID is the other member; for groups it is nil.
type SessionContext struct {
	ConversationID int64
	SelfID         int64
	Kind           models.ConversationKind
	CounterpartID  *int64
	Participants   []int64
}

// Open builds the SessionContext for selfID in conversationID. The caller
// must be a member, and a conversation with fewer than two members is
// rejected with ErrInvalidMembership.
func (s *ConversationService) Open(ctx context.Context, selfID, conversationID int64) (*SessionContext, error) {
	repo := s.repomanager.Conversations(s.db)

	conv, err := repo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("conversation %d: %w", conversationID, common.ErrorNotFound)
		}
		return nil, err
	}

	members, err := repo.Participants(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	sc := &SessionContext{ConversationID: conv.ID, SelfID: selfID, Kind: conv.Kind, Participants: members}
	isMember := false
	for _, id := range members {
		if id == selfID {
			isMember = true
			continue
		}
		if conv.Kind == models.KindDirect && sc.CounterpartID == nil {
			other := id
			sc.CounterpartID = &other
		}
	}
	if !isMember {
		return nil, common.ErrNotAParticipant
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("conversation %d has %d member(s): %w", conv.ID, len(members), common.ErrInvalidMembership)
	}
	return sc, nil
}

// Recipients lists the members a message sent in this session reaches.
func (sc *SessionContext) Recipients() []int64 {
	out := make([]int64, 0, len(sc.Participants))
	for _, id := range sc.Participants {
		if id != sc.SelfID {
			out = append(out, id)
		}
	}
	return out
}
