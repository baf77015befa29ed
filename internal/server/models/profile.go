package models

import "time"

// Profile is the public face of an authenticated identity. Every user that
// can send or join a conversation has exactly one.
type Profile struct {
	ID           int64
	AuthIdentity string
	Username     string
	Bio          string
	CreatedAt    time.Time
}
