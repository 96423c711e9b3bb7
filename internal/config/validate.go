package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return errors.New("database.dir must be set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
