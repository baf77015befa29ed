// Package events is an in-process publish/subscribe bus for engine events.
// Handlers run synchronously on the publisher's goroutine, in
// subscription order.
package events

import (
	"context"
	"sync"
)

type Kind string

const (
	ConversationCreated Kind = "conversation_created"
	MembershipChanged   Kind = "membership_changed"
	MessageAppended     Kind = "message_appended"
)

// Event describes a change to a conversation. Members lists every profile
// whose view of the conversation may have changed.
type Event struct {
	Kind           Kind
	ConversationID int64
	MessageID      int64
	ActorID        int64
	Members        []int64
}

type Handler func(ctx context.Context, e Event)

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}

// Recipients returns Members without the actor.
func (e Event) Recipients() []int64 {
	out := make([]int64, 0, len(e.Members))
	for _, id := range e.Members {
		if id != e.ActorID {
			out = append(out, id)
		}
	}
	return out
}
