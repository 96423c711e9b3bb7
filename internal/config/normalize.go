package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeDatabase() error {
	if value, ok := os.LookupEnv(databaseEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Database.Dir = strings.TrimSpace(value)
	}
	c.Database.Dir = strings.TrimSpace(c.Database.Dir)
	if c.Database.Dir == "" {
		c.Database.Dir = defaultDatabaseDir
	}
	var err error
	if c.Database.Dir, err = expandPath(c.Database.Dir); err != nil {
		return fmt.Errorf("database.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
