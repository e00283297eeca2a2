package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv loads environment variables from the given .env files.
// Without arguments the default .env in the working directory is loaded.
// Variables already present in the process environment are not overridden.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses the process environment into a Config.
//
// The default .env file is loaded once per process if present; a missing file
// is not an error. Load does not validate: callers may still fill paths from
// flags before calling Validate.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//		// Handle error
//	}
//	if err := cfg.Validate(); err != nil {
//		// Handle error
//	}
func Load() (Config, error) {
	var cfg Config
	if err := Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse fills any struct with env tags from the process environment, after
// loading the default .env file once. Components such as the HTTP server
// keep their own Config types and are parsed with it.
func Parse(dst any) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	if err := env.Parse(dst); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
