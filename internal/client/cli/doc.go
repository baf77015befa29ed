// Package cli provides the interactive GophChat command-line client.
//
// It wires configuration, the API client and services into a REPL. Typical
// flow: prompt for credentials, start a background connectivity watcher,
// then execute user commands against the currently open conversation.
//
// Key features:
//   - Register / Login / Logout
//   - Search profiles and start direct chats by profile id
//   - Create groups and list conversations
//   - Open a conversation, read its history and send messages
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
