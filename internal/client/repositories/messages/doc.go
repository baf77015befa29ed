// Package messages caches conversation history locally. Messages are keyed
// by their server id, so saving an overlapping page twice is harmless.
package messages
