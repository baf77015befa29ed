package cli

import (
	"context"
	"log"

	"github.com/dmitrijs2005/gophchat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the AuthService. The server derives the initial profile
// username from the email. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.printf("Error: %v\n", err)
		return err
	}

	a.printf("Success! You can login now.\n")
	return nil
}

// Login prompts the user for credentials and authenticates against the
// server. A failed login leaves the previous state untouched.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.authService.Login(ctx, userName, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.userName = userName
	a.chatService.Reset()
	a.setMode(ModeOnline)
	return nil
}

// Logout drops the token pair and forgets the open conversation.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.chatService.Reset()
	a.userName = ""
	return nil
}
