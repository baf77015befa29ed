package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

var (
	ErrNoConversation = errors.New("no conversation is open")
	ErrEmptyMessage   = errors.New("message is empty")
)

// ChatService drives conversations for the CLI. It remembers the
// conversation opened last so that History and Send need no id.
type ChatService interface {
	Me(ctx context.Context) (*models.Profile, error)
	Search(ctx context.Context, term string) (models.Page[models.Profile], error)
	Chat(ctx context.Context, profileID int64) (*models.Session, error)
	StartGroup(ctx context.Context, name string, memberIDs []int64) (*models.Session, error)
	Open(ctx context.Context, conversationID int64) (*models.Session, error)
	List(ctx context.Context) (models.Page[models.Summary], error)
	History(ctx context.Context) (models.Page[models.Message], error)
	Send(ctx context.Context, text string) (*models.Message, error)
	Current() *models.Session
	Reset()
}

type chatService struct {
	client client.Client
	cache  Cache

	mu      sync.Mutex
	current *models.Session
}

// NewChatService builds a ChatService. cache may be nil, in which case
// reads fail while the server is unreachable.
func NewChatService(client client.Client, cache Cache) ChatService {
	return &chatService{client: client, cache: cache}
}

func (s *chatService) Me(ctx context.Context) (*models.Profile, error) {
	return s.client.Me(ctx)
}

func (s *chatService) Search(ctx context.Context, term string) (models.Page[models.Profile], error) {
	return s.client.SearchProfiles(ctx, term)
}

// Chat resolves the direct conversation with profileID, creating it on
// first contact, and opens it.
func (s *chatService) Chat(ctx context.Context, profileID int64) (*models.Session, error) {
	conv, err := s.client.ResolveDirect(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("resolve direct: %w", err)
	}
	return s.Open(ctx, conv.ID)
}

func (s *chatService) StartGroup(ctx context.Context, name string, memberIDs []int64) (*models.Session, error) {
	conv, err := s.client.StartGroup(ctx, name, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("start group: %w", err)
	}
	return s.Open(ctx, conv.ID)
}

func (s *chatService) Open(ctx context.Context, conversationID int64) (*models.Session, error) {
	session, err := s.client.Open(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	return session, nil
}

// List returns the conversation list. When the server is unreachable the
// cached list is returned as a degraded page.
func (s *chatService) List(ctx context.Context) (models.Page[models.Summary], error) {
	page, err := s.client.ListConversations(ctx)
	if err == nil {
		if s.cache != nil && !page.Degraded {
			logCacheErr(s.cache.SaveConversations(ctx, page.Items))
		}
		return page, nil
	}
	if s.cache == nil || !errors.Is(err, client.ErrUnavailable) {
		return page, err
	}

	items, cerr := s.cache.Conversations(ctx)
	if cerr != nil {
		logCacheErr(cerr)
		return page, err
	}
	return models.Page[models.Summary]{Items: items, Degraded: true, Warning: offlineWarning}, nil
}

// History returns the open conversation's messages, falling back to the
// cache like List.
func (s *chatService) History(ctx context.Context) (models.Page[models.Message], error) {
	session := s.Current()
	if session == nil {
		return models.Page[models.Message]{}, ErrNoConversation
	}

	page, err := s.client.History(ctx, session.ConversationID)
	if err == nil {
		if s.cache != nil && !page.Degraded {
			logCacheErr(s.cache.SaveMessages(ctx, page.Items))
		}
		return page, nil
	}
	if s.cache == nil || !errors.Is(err, client.ErrUnavailable) {
		return page, err
	}

	items, cerr := s.cache.Messages(ctx, session.ConversationID)
	if cerr != nil {
		logCacheErr(cerr)
		return page, err
	}
	return models.Page[models.Message]{Items: items, Degraded: true, Warning: offlineWarning}, nil
}

// Send posts text to the open conversation. Direct messages are addressed
// to the counterpart; group messages carry no recipient.
func (s *chatService) Send(ctx context.Context, text string) (*models.Message, error) {
	session := s.Current()
	if session == nil {
		return nil, ErrNoConversation
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	var toID int64
	if session.IsDirect() {
		toID = session.CounterpartID
	}
	m, err := s.client.Send(ctx, session.ConversationID, toID, text)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		logCacheErr(s.cache.SaveMessages(ctx, []models.Message{*m}))
	}
	return m, nil
}

func (s *chatService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset forgets the open conversation, e.g. after logout.
func (s *chatService) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func logCacheErr(err error) {
	if err != nil {
		log.Printf("cache: %v", err)
	}
}
