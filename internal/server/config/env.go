package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOPHCHAT_"

// loadDotEnv copies variables from path into the process environment
// without overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays GOPHCHAT_* variables onto config.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"GRPC_ADDR":    &config.EndpointAddrGRPC,
		"DATABASE_DSN": &config.DatabaseDSN,
		"SECRET_KEY":   &config.SecretKey,
		"REDIS_URL":    &config.RedisURL,
		"LOG_LEVEL":    &config.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":  &config.AccessTokenValidityDuration,
		"REFRESH_TOKEN_TTL": &config.RefreshTokenValidityDuration,
		"INDEX_CACHE_TTL":   &config.IndexCacheTTL,
		"REQUEST_TIMEOUT":   &config.RequestTimeout,
	}
	for name, dst := range durations {
		v, ok := lookup(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
