// Package conversations caches the last conversation list fetched from the
// server so the CLI can still show it while offline.
//
// ReplaceAll swaps the whole cached list in the order given; List returns it
// in that same order. Timestamps are stored as Unix nanoseconds.
package conversations
