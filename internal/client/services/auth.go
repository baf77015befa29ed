// Package services contains application services for the GophChat client.
// This file defines the authentication service: register, login, logout and
// a liveness probe.
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/cryptox"
)

// saltSize is the length of the random salt generated at registration.
const saltSize = 32

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account from a username and password.
//   - Login: fetch the salt, derive the verifier and obtain a token pair.
//   - Logout: drop the token pair held by the client.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	cache  Cache
}

// NewAuthService constructs an AuthService bound to the given API client.
// cache may be nil.
func NewAuthService(client client.Client, cache Cache) AuthService {
	return &authService{client: client, cache: cache}
}

// Register generates a random salt, derives a verifier from the password
// and sends salt and verifier to the server. The password never leaves
// the process.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(saltSize)
	verifier := cryptox.LoginVerifier(password, salt)

	if err := a.client.Register(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login authenticates against the server. On success the client keeps the
// token pair for later calls and the local cache is handed to username.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.LoginVerifier(password, salt)
	defer common.WipeByteArray(verifier)

	if err := a.client.Login(ctx, username, verifier); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Claim(ctx, username); err != nil {
			log.Printf("cache: %v", err)
		}
	}
	return nil
}

// Logout drops the token pair and wipes the local cache.
func (a *authService) Logout(ctx context.Context) {
	a.client.Logout()
	if a.cache != nil {
		if err := a.cache.Clear(ctx); err != nil {
			log.Printf("cache: %v", err)
		}
	}
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
