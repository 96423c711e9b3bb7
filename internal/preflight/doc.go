// Package preflight runs the environment checks behind `coddb check`.
//
// Checks never return errors; each produces a Result with a pass flag and
// a one-line detail suitable for a table cell.
package preflight
