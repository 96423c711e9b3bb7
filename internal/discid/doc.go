// Package discid translates between MusicBrainz disc IDs and the hex
// database IDs used to name disc directories on disk.
//
// A MusicBrainz disc ID is base64 with the characters '+', '/' and '='
// replaced by '.', '_' and '-'. The database form is the same 20 raw
// bytes written as 40 lowercase hex characters, which is safe as a
// directory name on every filesystem. The first hex character selects
// one of 16 bucket directories and the first eight characters prefix
// every file belonging to the disc.
package discid
