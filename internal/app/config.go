package app

import (
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"
)

// DefaultSourceExtensions are indexed when a sources path is configured
// without explicit extensions.
var DefaultSourceExtensions = []string{".go", ".hcl"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestsPath    string   `validate:"omitempty,dir"`
	SourcesPath      string   `validate:"omitempty,dir"`
	SourceExtensions []string `validate:"dive,startswith=."`
	Addr             string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	NoColor   bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig applies defaults to cfg and validates it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SourcesPath != "" && len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = append([]string(nil), DefaultSourceExtensions...)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
			return nil, fmt.Errorf("invalid configuration: addr %q: %w", cfg.Addr, err)
		}
	}

	return &cfg, nil
}
