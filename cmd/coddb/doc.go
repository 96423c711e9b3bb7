// Package main hosts the coddb CLI, the administration tool for a
// codplayer disc database.
//
// The Cobra command tree initializes and validates database directories,
// lists and inspects ripped discs, prepares disc directories for the
// ripper and converts between MusicBrainz disc IDs and database IDs. It
// centralizes configuration resolution and logging setup so subcommands
// only deal with the database.
package main
