package discdb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoreInvalid marks a directory that is not a usable disc database.
	ErrStoreInvalid = errors.New("invalid disc database")
	// ErrStoreIO marks a failed filesystem operation.
	ErrStoreIO = errors.New("disc database i/o error")
	// ErrInvalidIdentifier marks a malformed disc ID or db ID supplied by
	// the caller. It indicates a bug on the calling side, not a missing disc.
	ErrInvalidIdentifier = errors.New("invalid disc identifier")

	// ErrVersionParse and ErrVersionMismatch refine ErrStoreInvalid for a
	// bad version file; errors.Is matches both the refinement and ErrStoreInvalid.
	ErrVersionParse    = fmt.Errorf("%w: unparsable version", ErrStoreInvalid)
	ErrVersionMismatch = fmt.Errorf("%w: incompatible version", ErrStoreInvalid)
)

// Error describes a failure within a disc database.
type Error struct {
	// Op is the operation that failed, e.g. "open" or "create disc".
	Op string
	// Root is the database directory.
	Root string
	// Entry is the bucket, file or path involved, if any.
	Entry string
	// Kind is one of the package sentinels.
	Kind error
	// Msg describes the failure when Err alone is not enough.
	Msg string
	// Err is the underlying cause, typically from the filesystem.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteByte(' ')
	}
	b.WriteString(e.Root)
	if e.Entry != "" {
		b.WriteString(" (")
		b.WriteString(e.Entry)
		b.WriteByte(')')
	}
	b.WriteString(": ")
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	default:
		b.WriteString("unknown error")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func invalidStore(op, root, entry, msg string) error {
	return &Error{Op: op, Root: root, Entry: entry, Kind: ErrStoreInvalid, Msg: msg}
}

func ioFailure(op, root, entry string, err error) error {
	return &Error{Op: op, Root: root, Entry: entry, Kind: ErrStoreIO, Err: err}
}

func invalidIdentifier(op, root, id string, err error) error {
	return &Error{Op: op, Root: root, Entry: id, Kind: ErrInvalidIdentifier, Err: err}
}
