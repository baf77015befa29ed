package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Chat(ctx context.Context, profileID string) error
	NewGroup(ctx context.Context, name string, memberIDs string) error
	List(ctx context.Context) error
	Open(ctx context.Context, conversationID string) error
	History(ctx context.Context) error
	Send(ctx context.Context, text string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: me, search <term>, chat <profile id>, group new <name> <id,id,...>, (l)ist, open <conversation id>, history, send <text>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the GophChat CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                          show available commands
//	  - register                      create an account
//	  - login                         authenticate
//	  - exit | quit                   leave the program
//
//	Logged in:
//	  - me                            show own profile
//	  - search <term>                 find profiles by username
//	  - chat <profile id>             open the direct conversation with a profile
//	  - group new <name> <id,id,...>  create a group and open its conversation
//	  - list | l                      list conversations
//	  - open <conversation id>        open a conversation
//	  - history                       show messages of the open conversation
//	  - send <text>                   send a message to the open conversation
//	  - logout                        log out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isSessionCommand(cmd) {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "me":
			_ = a.Me(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "chat":
			if len(args) != 1 {
				printlnFn("Usage: chat <profile id>")
				continue
			}
			_ = a.Chat(ctx, args[0])

		case "group":
			if len(args) != 3 || args[0] != "new" {
				printlnFn("Usage: group new <name> <id,id,...>")
				continue
			}
			_ = a.NewGroup(ctx, args[1], args[2])

		case "l", "list":
			_ = a.List(ctx)

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <conversation id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "history":
			_ = a.History(ctx)

		case "send":
			text := strings.TrimSpace(strings.TrimPrefix(line, cmd))
			if text == "" {
				printlnFn("Usage: send <text>")
				continue
			}
			_ = a.Send(ctx, text)

		case "logout":
			_ = a.Logout(ctx)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isSessionCommand(cmd string) bool {
	switch cmd {
	case "me", "search", "chat", "group", "l", "list", "open", "history", "send", "logout":
		return true
	}
	return false
}
