// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a credential record. Its ID is the auth identity a Profile hangs off.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
