// Package config loads stockfeed configuration from file, environment,
// and defaults. API keys live here and are passed into the clients at
// construction; nothing reads process-wide state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// TickerFile is the newline-delimited (or .yaml/.yml) ticker list.
	TickerFile string `mapstructure:"ticker_file" validate:"required"`

	// FMPAPIKey authenticates against financialmodelingprep. Required for
	// refresh runs only, so not validated here.
	FMPAPIKey string `mapstructure:"fmp_api_key"`

	// DataDir holds the record store.
	DataDir string `mapstructure:"data_dir" validate:"required"`

	// RequestTimeout bounds each external provider call.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	// RateLimit is the per-provider request rate (requests per second).
	RateLimit int `mapstructure:"rate_limit" validate:"gte=1"`

	// Schedule is the cron expression for serve mode.
	Schedule string `mapstructure:"schedule" validate:"required"`

	// QuoteTTL bounds live-quote cache staleness for show --live.
	QuoteTTL time.Duration `mapstructure:"quote_ttl" validate:"gt=0"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// Load reads configuration from the given file (optional), environment
// variables prefixed STOCKFEED_, and defaults, in that precedence order.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("ticker_file", "all_stock_codes.txt")
	v.SetDefault("fmp_api_key", "")
	v.SetDefault("data_dir", "data")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("rate_limit", 5)
	v.SetDefault("schedule", "0 6 * * *")
	v.SetDefault("quote_ttl", time.Minute)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("STOCKFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
