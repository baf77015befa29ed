package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t int        access token validity, minutes
//	-r int        refresh token validity, minutes
//	-redis string Redis URL for locks and the chat-list cache
//	-ttl duration chat-list cache lifetime
//	-timeout duration per-request deadline
//	-l string     log level
//
// Arguments are first narrowed to these flags with flagx.FilterArgs so the
// -c/-config flag handled elsewhere does not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-r", "-redis", "-ttl", "-timeout", "-l"})

	fs := flag.NewFlagSet("gophchat-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.StringVar(&config.RedisURL, "redis", config.RedisURL, "redis URL")
	fs.DurationVar(&config.IndexCacheTTL, "ttl", config.IndexCacheTTL, "chat list cache TTL")
	fs.DurationVar(&config.RequestTimeout, "timeout", config.RequestTimeout, "request timeout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if visited["t"] {
		config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	}
	if visited["r"] {
		config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	}
	return nil
}
