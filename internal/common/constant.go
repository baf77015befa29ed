// Package common contains shared constants and sentinel errors used across
// GophChat components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Display fallbacks used when a referenced row is missing.
const (
	DefaultUsername   = "New User"
	DefaultBio        = "Hello, I am a new user!"
	UnknownSenderName = "Unknown User"
)
