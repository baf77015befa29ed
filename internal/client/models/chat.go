// Package models defines the client-side view of profiles, conversations and
// messages as returned by the GophChat server.
package models

import (
	"fmt"
	"time"
)

type ConversationKind string

const (
	KindDirect ConversationKind = "direct"
	KindGroup  ConversationKind = "group"
)

type Profile struct {
	ID       int64
	Username string
	Bio      string
}

func (p Profile) String() string {
	return fmt.Sprintf("#%d %s", p.ID, p.Username)
}

type Conversation struct {
	ID        int64
	Kind      ConversationKind
	Name      string
	GroupID   int64
	CreatedAt time.Time
}

// Summary is one row of the conversation list.
type Summary struct {
	Conversation  Conversation
	DisplayName   string
	LastMessageAt *time.Time
	Degraded      bool
}

// Session is an opened conversation. CounterpartID is zero for groups.
type Session struct {
	ConversationID int64
	Kind           ConversationKind
	SelfID         int64
	CounterpartID  int64
	Participants   []int64
}

func (s *Session) IsDirect() bool { return s != nil && s.Kind == KindDirect }

type Message struct {
	ID             int64
	ConversationID int64
	FromID         int64
	ToID           int64
	SenderName     string
	Contents       string
	CreatedAt      time.Time
}

// Format renders a message as a single line for terminal output.
func (m Message) Format() string {
	return fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.SenderName, m.Contents)
}

// Page carries a possibly degraded read result. Warning is set when the
// server answered with placeholders because storage was unavailable.
type Page[T any] struct {
	Items    []T
	Degraded bool
	Warning  string
}
