// Package client talks to the GophChat backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     account calls (Register/GetSalt/Login/Logout, Ping) and conversation
//     calls (Me, SearchProfiles, ResolveDirect, StartGroup, ResolveGroup,
//     Open, ListConversations, Send, History).
//  2. A gRPC implementation (see GRPCClient) that manages a connection,
//     injects the access token via an interceptor, transparently refreshes
//     an expired token once, and maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Server failures surface as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrInvalidArgument,
// ErrForbidden, ErrConflict, ErrAlreadyExists. The server's own message is
// kept in the wrapped error text.
//
// # Degraded reads
//
// SearchProfiles, ListConversations and History return a models.Page whose
// Degraded flag and Warning mirror the server's response when storage was
// unreachable.
package client
