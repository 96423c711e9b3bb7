// Package toc turns the table of contents written by cdrdao during a rip
// into a Disc summary.
//
// The disc database treats TOC content as an opaque blob and delegates to
// a Parser; DefaultParser understands enough of the cdrdao format to
// report the catalog number, the audio data file, the disc-level CD-TEXT
// title and performer, and the number of audio tracks.
package toc
