package models

import "time"

// Message is an immutable text entry. ToID is set for direct conversations
// and nil for group ones.
type Message struct {
	ID             int64
	ConversationID int64
	FromID         int64
	ToID           *int64
	Contents       string
	CreatedAt      time.Time
}

// HistoryEntry is a message joined with its sender's display name.
type HistoryEntry struct {
	Message
	SenderName string
}
