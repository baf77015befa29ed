// Package config provides configuration for the GophChat CLI: defaults,
// GOPHCHAT_* environment variables (optionally from a .env file), a JSON or
// YAML file given with -c/-config, and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the GophChat CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: deadline for a single call to the server.
//   - CacheDSN: path of the local SQLite cache; empty disables it.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	CacheDSN            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CacheDSN = "gophchat_cache.db"
}

// LoadConfig builds a Config from every source. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if path := flagx.ConfigFileFromArgs(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("GOPHCHAT_SERVER_ADDR"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := lookup("GOPHCHAT_CACHE_DSN"); ok {
		cfg.CacheDSN = v
	}
	for name, dst := range map[string]*time.Duration{
		"GOPHCHAT_ONLINE_CHECK_INTERVAL": &cfg.OnlineCheckInterval,
		"GOPHCHAT_CLIENT_TIMEOUT":        &cfg.RequestTimeout,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
	}
	return nil
}
