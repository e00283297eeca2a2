// Package config loads botfilter settings from the environment.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are loaded into the process environment and then
// parsed into a Config through struct tags. Custom include/exclude lists can
// also be kept in a YAML file (`gopkg.in/yaml.v3`) referenced by
// BOTFILTER_CUSTOM_LISTS_FILE.
//
// # Variables
//
//	BOTFILTER_IP_FILE            IP exclusion list path
//	BOTFILTER_EXCLUDE_FILE       exclude user agent list path
//	BOTFILTER_INCLUDE_FILE       include user agent list path
//	BOTFILTER_CUSTOM_INCLUDE     comma-separated substrings always treated as browsers
//	BOTFILTER_CUSTOM_EXCLUDE     comma-separated substrings always treated as robots
//	BOTFILTER_CUSTOM_LISTS_FILE  YAML file with include/exclude arrays
//	BOTFILTER_TIMEZONE           zone for inactive dates (default UTC)
//	BOTFILTER_LOG_LEVEL          debug, info, warn, error (default info)
//	BOTFILTER_LOG_FORMAT         text or json (default text)
//	BOTFILTER_ENV                development, staging, production
//
// # Usage
//
//	if err := config.LoadEnv("./config/.env"); err != nil {
//	    log.Fatalf("loading env: %v", err)
//	}
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatalf("invalid config: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`        – failed to parse env vars into the struct.
//   - `ErrLoadingEnvFile`       – a requested .env file could not be loaded.
//   - `ErrMissingReferenceFile` – a reference list path is empty.
//   - `ErrInvalidTimezone`      – BOTFILTER_TIMEZONE is not a known zone.
//   - `ErrReadingCustomLists`   – the YAML lists file is unreadable or invalid.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
