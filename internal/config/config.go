// Package config defines run configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"

	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/logger"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RecordsFile is the YAML/JSON records document read when no file
	// argument is given. Empty means the built-in sample.
	RecordsFile string `koanf:"records_file"`

	// Format selects the report format: text or json.
	Format string `koanf:"format"`

	// Rank prints ranked totals; false prints totals in first-appearance order.
	Rank bool `koanf:"rank"`

	// Subjects is the accepted subject set. Empty accepts any subject.
	Subjects []string `koanf:"subjects"`

	// Metrics dumps the metrics registry to stderr after a run.
	Metrics bool `koanf:"metrics"`
}

// New returns a Config holding the defaults.
func New() *Config {
	known := model.KnownSubjects()
	subjects := make([]string, len(known))
	for i, s := range known {
		subjects[i] = string(s)
	}
	return &Config{
		LogLevel: "warn",
		Format:   FormatText,
		Rank:     true,
		Subjects: subjects,
	}
}

// SubjectSet returns Subjects as model values.
func (c *Config) SubjectSet() []model.Subject {
	out := make([]model.Subject, len(c.Subjects))
	for i, s := range c.Subjects {
		out[i] = model.Subject(s)
	}
	return out
}

// Validate checks field values.
func (c *Config) Validate(_ context.Context) error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: format must be %s or %s, got %q", ErrInvalidConfig, FormatText, FormatJSON, c.Format)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for i, s := range c.Subjects {
		if s == "" {
			return fmt.Errorf("%w: subjects[%d] is empty", ErrInvalidConfig, i)
		}
	}
	return nil
}
