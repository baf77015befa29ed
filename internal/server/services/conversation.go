package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/events"
	"github.com/dmitrijs2005/gophchat/internal/server/lock"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

// conflictRetries is how many times a lost creation race is re-resolved.
const conflictRetries = 1

// ConversationService turns participant sets into stable conversation ids.
// At most one direct conversation exists per unordered pair, and a group
// conversation is created once per group.
type ConversationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	locker      lock.Locker
	publisher   events.Publisher
	logger      logging.Logger
	retryDelay  time.Duration
}

func NewConversationService(db *sql.DB, m repomanager.RepositoryManager, locker lock.Locker, p events.Publisher, l logging.Logger) *ConversationService {
	return &ConversationService{
		db:          db,
		repomanager: m,
		locker:      locker,
		publisher:   p,
		logger:      l.With("module", "conversations"),
		retryDelay:  10 * time.Millisecond,
	}
}

func (s *ConversationService) profile(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("profile %d: %w", id, common.ErrUnknownParticipant)
		}
		return nil, err
	}
	return p, nil
}

// withConflictRetry runs fn again when it reports common.ErrConflictRetry.
func (s *ConversationService) withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(conflictRetries, retry.NewConstant(s.retryDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrConflictRetry) {
			s.logger.Debug(ctx, "creation race lost, re-resolving")
			return retry.RetryableError(err)
		}
		return err
	})
}

// ResolveDirect returns the direct conversation between a and b, creating it
// with exactly two memberships if none exists. Argument order does not matter.
func (s *ConversationService) ResolveDirect(ctx context.Context, a, b int64) (*models.Conversation, error) {
	if a <= 0 || b <= 0 || a == b {
		return nil, fmt.Errorf("direct conversation needs two distinct participants: %w", common.ErrInvalidMembership)
	}
	if a > b {
		a, b = b, a
	}

	pa, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	pb, err := s.profile(ctx, b)
	if err != nil {
		return nil, err
	}

	var conv *models.Conversation
	err = s.withConflictRetry(ctx, func(ctx context.Context) error {
		var err error
		conv, err = s.resolveDirectOnce(ctx, pa, pb)
		return err
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ConversationService) resolveDirectOnce(ctx context.Context, pa, pb *models.Profile) (*models.Conversation, error) {
	repo := s.repomanager.Conversations(s.db)

	conv, err := repo.FindDirect(ctx, pa.ID, pb.ID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, "direct:"+models.DirectKey(pa.ID, pb.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// someone may have created it while we waited for the lock
	conv, err = repo.FindDirect(ctx, pa.ID, pb.ID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Conversations(tx)
		var err error
		conv, err = txRepo.CreateDirect(ctx, pa.ID, pb.ID, "Chat with "+pb.Username)
		if err != nil {
			return err
		}
		for _, id := range []int64{pa.ID, pb.ID} {
			if _, err := txRepo.AddParticipant(ctx, conv.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "direct conversation created", "conversation_id", conv.ID, "a", pa.ID, "b", pb.ID)
	s.publisher.Publish(ctx, events.Event{
		Kind:           events.ConversationCreated,
		ConversationID: conv.ID,
		ActorID:        pa.ID,
		Members:        []int64{pa.ID, pb.ID},
	})
	return conv, nil
}

// distinctIDs removes duplicates keeping first-seen order.
func distinctIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("participant id %d: %w", id, common.ErrInvalidMembership)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func (s *ConversationService) validateMembers(ctx context.Context, ids []int64) ([]int64, error) {
	members, err := distinctIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("group conversation needs at least two participants: %w", common.ErrInvalidMembership)
	}
	for _, id := range members {
		if _, err := s.profile(ctx, id); err != nil {
			return nil, err
		}
	}
	return members, nil
}

// ResolveGroup returns the conversation of group groupRef, creating it once,
// and inserts any missing membership rows for participantIDs.
func (s *ConversationService) ResolveGroup(ctx context.Context, participantIDs []int64, groupRef int64) (*models.Conversation, error) {
	return s.resolveGroup(ctx, 0, participantIDs, groupRef)
}

// ResolveGroupAs is ResolveGroup on behalf of actorID, who is added to the
// participants. Only an existing member may do it: if the group has no
// conversation yet or actorID is not in it, ErrNotAParticipant is returned
// and nothing is written.
func (s *ConversationService) ResolveGroupAs(ctx context.Context, actorID int64, participantIDs []int64, groupRef int64) (*models.Conversation, error) {
	if actorID <= 0 {
		return nil, common.ErrNotAParticipant
	}
	ids := append([]int64{actorID}, participantIDs...)
	return s.resolveGroup(ctx, actorID, ids, groupRef)
}

// resolveGroup checks actorID's membership inside the transaction when it
// is non-zero.
func (s *ConversationService) resolveGroup(ctx context.Context, actorID int64, participantIDs []int64, groupRef int64) (*models.Conversation, error) {
	members, err := s.validateMembers(ctx, participantIDs)
	if err != nil {
		return nil, err
	}

	group, err := s.repomanager.Groups(s.db).GetByID(ctx, groupRef)
	if err != nil {
		return nil, fmt.Errorf("group %d: %w", groupRef, err)
	}

	var (
		conv    *models.Conversation
		created bool
		added   bool
		all     []int64
	)
	err = s.withConflictRetry(ctx, func(ctx context.Context) error {
		created, added = false, false
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Conversations(tx)

			var err error
			conv, err = repo.FindByGroupRef(ctx, group.ID)
			switch {
			case errors.Is(err, common.ErrorNotFound) && actorID != 0:
				return fmt.Errorf("group %d: %w", group.ID, common.ErrNotAParticipant)
			case errors.Is(err, common.ErrorNotFound):
				conv, err = repo.CreateForGroup(ctx, group.ID, group.GroupName)
				created = err == nil
			}
			if err != nil {
				return err
			}

			if actorID != 0 {
				ok, err := repo.IsParticipant(ctx, conv.ID, actorID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("group %d: %w", group.ID, common.ErrNotAParticipant)
				}
			}

			for _, id := range members {
				ok, err := repo.AddParticipant(ctx, conv.ID, id)
				if err != nil {
					return err
				}
				added = added || ok
			}

			all, err = repo.Participants(ctx, conv.ID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	switch {
	case created:
		s.logger.Info(ctx, "group conversation created", "conversation_id", conv.ID, "group_id", group.ID)
		s.publisher.Publish(ctx, events.Event{Kind: events.ConversationCreated, ConversationID: conv.ID, ActorID: members[0], Members: all})
	case added:
		s.logger.Info(ctx, "group membership repaired", "conversation_id", conv.ID, "group_id", group.ID)
		s.publisher.Publish(ctx, events.Event{Kind: events.MembershipChanged, ConversationID: conv.ID, ActorID: members[0], Members: all})
	}
	return conv, nil
}

// CreateGroup stores a new named group.
func (s *ConversationService) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is empty: %w", common.ErrInvalidMembership)
	}
	g, err := s.repomanager.Groups(s.db).Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

// StartGroup creates a group named name for creator and memberIDs and
// resolves its conversation. Membership is validated before the group row
// is written.
func (s *ConversationService) StartGroup(ctx context.Context, creatorID int64, name string, memberIDs []int64) (*models.Conversation, error) {
	ids := append([]int64{creatorID}, memberIDs...)
	if _, err := s.validateMembers(ctx, ids); err != nil {
		return nil, err
	}
	g, err := s.CreateGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.ResolveGroup(ctx, ids, g.ID)
}
