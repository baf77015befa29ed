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

// Conversation is a message container shared by two or more profiles.
//
// Name is a placeholder stored at creation time and is never used as a
// display label for direct conversations. DirectKey is set only for direct
// conversations, GroupRef only for group ones.
type Conversation struct {
	ID        int64
	Kind      ConversationKind
	Name      string
	GroupRef  *int64
	DirectKey string
	CreatedAt time.Time
}

// DirectKey returns the canonical key of the unordered pair {a, b}.
func DirectKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

type Group struct {
	ID        int64
	GroupName string
	CreatedAt time.Time
}

// ConversationSummary is one row of a user's chat list.
type ConversationSummary struct {
	Conversation  Conversation
	DisplayName   string
	LastMessageAt *time.Time
	// Degraded is set when the display name is a placeholder because
	// participant data could not be fetched.
	Degraded bool
}
