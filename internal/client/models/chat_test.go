package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Format(t *testing.T) {
	m := Message{SenderName: "alice", Contents: "hi there", CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)}
	got := m.Format()
	assert.True(t, strings.HasPrefix(got, "[2024-03-01 10:00]"), got)
	assert.True(t, strings.HasSuffix(got, "alice: hi there"), got)
}

func TestSession_IsDirect(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsDirect())
	assert.True(t, (&Session{Kind: KindDirect}).IsDirect())
	assert.False(t, (&Session{Kind: KindGroup}).IsDirect())
}

func TestProfile_String(t *testing.T) {
	assert.Equal(t, "#7 bob", Profile{ID: 7, Username: "bob"}.String())
}
