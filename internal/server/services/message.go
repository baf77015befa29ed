package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/events"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
)

// MessageService appends and replays conversation messages.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	logger      logging.Logger
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, l logging.Logger) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		publisher:   p,
		logger:      l.With("module", "messages"),
	}
}

// Append stores a message after checking that fromID is a member. Contents
// are trimmed; blank contents are rejected. toID is dropped for group
// conversations and must name another member for direct ones. The
// conversation row is locked for the insert so concurrent appends commit in
// the order their ids and timestamps were assigned.
func (s *MessageService) Append(ctx context.Context, conversationID, fromID int64, toID *int64, contents string) (*models.Message, error) {
	contents = strings.TrimSpace(contents)
	if contents == "" {
		return nil, common.ErrEmptyContent
	}

	var (
		msg     *models.Message
		members []int64
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		convRepo := s.repomanager.Conversations(tx)
		conv, err := convRepo.GetForUpdate(ctx, conversationID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("conversation %d: %w", conversationID, common.ErrorNotFound)
			}
			return err
		}

		members, err = convRepo.Participants(ctx, conv.ID)
		if err != nil {
			return err
		}
		if !contains(members, fromID) {
			return common.ErrNotAParticipant
		}
		if len(members) < 2 {
			return fmt.Errorf("conversation %d has %d member(s): %w", conv.ID, len(members), common.ErrInvalidMembership)
		}

		switch conv.Kind {
		case models.KindGroup:
			toID = nil
		case models.KindDirect:
			if toID != nil && (*toID == fromID || !contains(members, *toID)) {
				return fmt.Errorf("recipient %d: %w", *toID, common.ErrInvalidMembership)
			}
		}

		msg, err = s.repomanager.Messages(tx).Append(ctx, &models.Message{
			ConversationID: conv.ID,
			FromID:         fromID,
			ToID:           toID,
			Contents:       contents,
		})
		if err != nil {
			return fmt.Errorf("append message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "message appended", "conversation_id", conversationID, "message_id", msg.ID, "from", fromID)
	s.publisher.Publish(ctx, events.Event{
		Kind:           events.MessageAppended,
		ConversationID: conversationID,
		MessageID:      msg.ID,
		ActorID:        fromID,
		Members:        members,
	})
	return msg, nil
}

// Send appends contents within an open session. Direct messages are
// addressed to the counterpart; group messages have no single recipient.
func (s *MessageService) Send(ctx context.Context, sc *SessionContext, contents string) (*models.Message, error) {
	if sc == nil {
		return nil, common.ErrNotAParticipant
	}
	var to *int64
	if sc.Kind == models.KindDirect {
		to = sc.CounterpartID
	}
	return s.Append(ctx, sc.ConversationID, sc.SelfID, to, contents)
}

// History returns every message of the conversation ordered by
// (createdAt, id). Senders without a profile are shown as "Unknown User".
func (s *MessageService) History(ctx context.Context, conversationID int64) ([]*models.HistoryEntry, error) {
	entries, err := s.repomanager.Messages(s.db).History(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	for _, e := range entries {
		if e.SenderName == "" {
			e.SenderName = common.UnknownSenderName
		}
	}
	if entries == nil {
		entries = []*models.HistoryEntry{}
	}
	return entries, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
