// Package logging assembles structured slog loggers and formatting helpers
// used by the disc database and the coddb CLI.
//
// It owns the console and JSON handlers, level and output plumbing, and a
// context helper that tags log lines with the invocation's correlation ID.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
