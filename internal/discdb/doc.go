// Package discdb manages the filesystem database of ripped discs.
//
// A database directory looks like this:
//
//	DB_DIR/.codplayerdb        format version, a single decimal line
//	DB_DIR/discs/0/ ... f/     16 buckets keyed by the first hex digit
//	DB_DIR/discs/b/b8ffac79b6688994986a4661fa0ddca0aae67bc2/
//	    b8ffac79.id            MusicBrainz disc ID plus newline
//	    b8ffac79.cdr           raw PCM audio
//	    b8ffac79.toc           TOC written by cdrdao
//	    b8ffac79.cod           optional edited TOC
//	    b8ffac79.riplog        optional rip log
//
// Disc files share the first eight characters of the database ID so a
// trashed database can be reconstructed by hand. The .id file keeps the
// original disc ID recoverable without knowing the encoding scheme.
//
// Init creates a database in an empty directory and Open validates an
// existing one; there is no repair or migration. A Store looks discs up,
// lists them lazily bucket by bucket and prepares directories for new
// rips. Creating a disc entry is idempotent so an aborted rip can be
// restarted in place. The package does not coordinate concurrent writers:
// callers must serialize rips of the same disc.
//
// Every failure is an *Error whose kind is one of ErrStoreInvalid,
// ErrStoreIO or ErrInvalidIdentifier. A disc that is not (yet) fully
// ripped is reported as absent, not as an error.
package discdb
