package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"golang.org/x/text/unicode/norm"
)

const defaultSearchLimit = 50

// ProfileService is the profile directory: idempotent find-or-create keyed
// by auth identity, and username search.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	searchLimit int
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "profiles"),
		searchLimit: defaultSearchLimit,
	}
}

// newProfile builds the row inserted for an identity seen for the first
// time: username is the local part of the hint, bio is the stock greeting.
func newProfile(identity, usernameHint string) *models.Profile {
	return &models.Profile{
		AuthIdentity: identity,
		Username:     defaultUsername(usernameHint),
		Bio:          common.DefaultBio,
	}
}

// defaultUsername is the NFC-normalised local part of hint.
func defaultUsername(hint string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(hint), "@")
	local = norm.NFC.String(strings.TrimSpace(local))
	if local == "" {
		return common.DefaultUsername
	}
	return local
}

// EnsureProfile returns the profile for identity, creating it on first use.
// Concurrent calls for the same identity all return the same row.
func (s *ProfileService) EnsureProfile(ctx context.Context, identity, usernameHint string) (*models.Profile, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, common.ErrUnknownParticipant
	}
	p, err := s.repomanager.Profiles(s.db).CreateIfAbsent(ctx, newProfile(identity, usernameHint))
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	return p, nil
}

// ForIdentity resolves the profile of an authenticated caller. When the
// profile is missing, the username of the credential record is used as the
// hint for creating it.
func (s *ProfileService) ForIdentity(ctx context.Context, identity string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).GetByAuthIdentity(ctx, identity)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	hint := ""
	if u, err := s.repomanager.Users(s.db).GetByID(ctx, identity); err == nil {
		hint = u.UserName
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.logger.Info(ctx, "creating missing profile", "identity", identity)
	return s.EnsureProfile(ctx, identity, hint)
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("profile %d: %w", id, common.ErrUnknownParticipant)
		}
		return nil, err
	}
	return p, nil
}

// Search returns profiles whose username contains term, ignoring case. An
// empty term matches nothing. The caller's own profile is not excluded.
// Term and usernames are both compared in NFC form.
func (s *ProfileService) Search(ctx context.Context, term string) ([]*models.Profile, error) {
	term = norm.NFC.String(strings.TrimSpace(term))
	if term == "" {
		return []*models.Profile{}, nil
	}
	result, err := s.repomanager.Profiles(s.db).Search(ctx, term, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	if result == nil {
		result = []*models.Profile{}
	}
	return result, nil
}
