// Package config loads, normalizes, and validates codplayer configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CODPLAYER_DATABASE
// environment fallback for the database directory.
package config
