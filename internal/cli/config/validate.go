package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"context-variants/internal/classify"
)

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log_format must be %s or %s, got %q", LogFormatConsole, LogFormatJSON, c.LogFormat))
	}

	switch c.Output {
	case OutputTable, OutputYAML, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output must be %s, %s or %s, got %q", OutputTable, OutputYAML, OutputJSON, c.Output))
	}

	if _, err := classify.NewOptionalizer(c.OptionalWrapper); err != nil {
		errs = append(errs, fmt.Errorf("optional_wrapper: %w", err))
	}

	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}

	return errors.Join(errs...)
}
