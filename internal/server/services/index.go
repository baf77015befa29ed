package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/cache"
	"github.com/dmitrijs2005/gophchat/internal/server/events"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
)

// IndexService builds a user's chat list with display names. Complete
// listings are cached per user and dropped when an event touches the user.
type IndexService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	ttl         time.Duration
	logger      logging.Logger
}

func NewIndexService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache, ttl time.Duration, l logging.Logger) *IndexService {
	return &IndexService{
		db:          db,
		repomanager: m,
		cache:       c,
		ttl:         ttl,
		logger:      l.With("module", "index"),
	}
}

func chatListKey(userID int64) string {
	return "chatlist:" + strconv.FormatInt(userID, 10)
}

// chatListGenKey counts invalidations of userID's chat list. A listing is
// only cached if no invalidation ran while it was being built.
func chatListGenKey(userID int64) string {
	return "chatlist-gen:" + strconv.FormatInt(userID, 10)
}

// ListFor returns the conversations userID belongs to, newest first.
// Conversations with fewer than two members are omitted. If names for an
// entry cannot be fetched the entry keeps a placeholder and is marked
// Degraded; the listing itself still succeeds.
func (s *IndexService) ListFor(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	if cached, ok := s.fromCache(ctx, userID); ok {
		return cached, nil
	}
	gen, genOK := s.generation(ctx, userID)

	convs, err := s.repomanager.Conversations(s.db).ListForParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	result := make([]models.ConversationSummary, 0, len(convs))
	degraded := false
	for _, c := range convs {
		summary, keep := s.summarize(ctx, userID, c)
		if !keep {
			continue
		}
		degraded = degraded || summary.Degraded
		result = append(result, summary)
	}

	if degraded {
		s.logger.Warn(ctx, "chat list degraded", "user_id", userID)
	} else if genOK {
		s.toCache(ctx, userID, gen, result)
	}
	return result, nil
}

func (s *IndexService) summarize(ctx context.Context, userID int64, c *models.Conversation) (models.ConversationSummary, bool) {
	summary := models.ConversationSummary{Conversation: *c, DisplayName: placeholderName(c)}

	members, err := s.repomanager.Conversations(s.db).Participants(ctx, c.ID)
	if err != nil {
		s.logger.Warn(ctx, "participants unavailable", "conversation_id", c.ID, "error", err)
		summary.Degraded = true
		return summary, true
	}
	distinct, _ := distinctIDs(members)
	if len(distinct) < 2 {
		return summary, false
	}

	if last, err := s.repomanager.Messages(s.db).LastMessageAt(ctx, c.ID); err == nil {
		summary.LastMessageAt = last
	} else {
		s.logger.Debug(ctx, "last message time unavailable", "conversation_id", c.ID, "error", err)
	}

	switch c.Kind {
	case models.KindGroup:
		if c.GroupRef == nil {
			break
		}
		g, err := s.repomanager.Groups(s.db).GetByID(ctx, *c.GroupRef)
		switch {
		case err == nil && g.GroupName != "":
			summary.DisplayName = g.GroupName
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			summary.Degraded = true
		}
	case models.KindDirect:
		var other int64
		for _, id := range distinct {
			if id != userID {
				other = id
				break
			}
		}
		p, err := s.repomanager.Profiles(s.db).GetByID(ctx, other)
		switch {
		case err == nil && p.Username != "":
			summary.DisplayName = p.Username
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			summary.Degraded = true
		}
	}
	return summary, true
}

func placeholderName(c *models.Conversation) string {
	if c.Kind == models.KindGroup {
		return fmt.Sprintf("Group Chat %d", c.ID)
	}
	return fmt.Sprintf("Chat %d", c.ID)
}

func (s *IndexService) fromCache(ctx context.Context, userID int64) ([]models.ConversationSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, err := s.cache.Get(ctx, chatListKey(userID))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn(ctx, "chat list cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}
	var list []models.ConversationSummary
	if err := json.Unmarshal(b, &list); err != nil {
		s.logger.Warn(ctx, "chat list cache entry corrupt", "user_id", userID, "error", err)
		return nil, false
	}
	return list, true
}

func (s *IndexService) generation(ctx context.Context, userID int64) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := cache.Counter(ctx, s.cache, chatListGenKey(userID))
	if err != nil {
		s.logger.Warn(ctx, "chat list generation read failed", "user_id", userID, "error", err)
		return 0, false
	}
	return gen, true
}

func (s *IndexService) toCache(ctx context.Context, userID, gen int64, list []models.ConversationSummary) {
	b, err := json.Marshal(list)
	if err != nil {
		return
	}
	stored, err := s.cache.SetIfCounter(ctx, chatListKey(userID), b, s.ttl, chatListGenKey(userID), gen)
	if err != nil {
		s.logger.Warn(ctx, "chat list cache write failed", "user_id", userID, "error", err)
		return
	}
	if !stored {
		s.logger.Debug(ctx, "chat list changed while listing, not cached", "user_id", userID)
	}
}

// HandleEvent drops cached chat lists of every member the event touches.
// Generations are bumped first so a listing built before the event is not
// written back.
func (s *IndexService) HandleEvent(ctx context.Context, e events.Event) {
	if s.cache == nil || len(e.Members) == 0 {
		return
	}
	keys := make([]string, 0, len(e.Members))
	for _, id := range e.Members {
		if _, err := s.cache.Incr(ctx, chatListGenKey(id)); err != nil {
			s.logger.Warn(ctx, "chat list generation bump failed", "user_id", id, "error", err)
		}
		keys = append(keys, chatListKey(id))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn(ctx, "chat list invalidation failed", "conversation_id", e.ConversationID, "error", err)
	}
}
