package discdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"codplayer/internal/fileutil"
	"codplayer/internal/logging"
	"codplayer/internal/toc"
)

// Store is an opened, validated disc database.
type Store struct {
	root   string
	layout Layout
	parser toc.Parser
	logger *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger routes store logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithParser replaces the TOC parser used by Lookup.
func WithParser(parser toc.Parser) Option {
	return func(s *Store) {
		if parser != nil {
			s.parser = parser
		}
	}
}

func newStore(root string, opts []Option) *Store {
	s := &Store{
		root:   root,
		layout: DefaultLayout(),
		parser: toc.DefaultParser,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "discdb").With(logging.String(logging.FieldDBDir, root))
	return s
}

// Root returns the database directory.
func (s *Store) Root() string {
	return s.root
}

// Layout returns the schema the store was opened with.
func (s *Store) Layout() Layout {
	return s.layout
}

// Init turns root, which must be an existing empty directory, into a new
// database and returns it opened. Calling Init on a database fails because
// the directory is no longer empty.
func Init(root string, opts ...Option) (*Store, error) {
	const op = "init"
	s := newStore(root, opts)
	l := s.layout

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, invalidStore(op, root, "", "no such directory")
		}
		return nil, ioFailure(op, root, "", err)
	}
	if !info.IsDir() {
		return nil, invalidStore(op, root, "", "not a directory")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ioFailure(op, root, "", err)
	}
	if len(entries) > 0 {
		return nil, invalidStore(op, root, "", "directory is not empty")
	}

	version := []byte(strconv.Itoa(l.Version) + "\n")
	if err := fileutil.WriteFileAtomic(l.VersionPath(root), version, 0o644); err != nil {
		return nil, ioFailure(op, root, l.VersionFile, err)
	}
	if err := os.Mkdir(l.DiscsPath(root), 0o755); err != nil {
		return nil, ioFailure(op, root, l.DiscsDir, err)
	}
	for _, bucket := range l.Buckets {
		if err := os.Mkdir(l.BucketPath(root, bucket), 0o755); err != nil {
			return nil, ioFailure(op, root, bucket, err)
		}
	}

	s.logger.Info("initialized disc database", logging.Int("version", l.Version))
	return s, nil
}

// Open validates root as a disc database. Checks run in a fixed order and
// the first failure is returned: root is a directory, the version file
// holds the supported version, the discs directory and every bucket exist.
func Open(root string, opts ...Option) (*Store, error) {
	const op = "open"
	s := newStore(root, opts)
	l := s.layout

	isDir, err := statDir(root)
	if err != nil {
		return nil, ioFailure(op, root, "", err)
	}
	if !isDir {
		return nil, invalidStore(op, root, "", "no such directory")
	}

	version, err := readVersion(l.VersionPath(root))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, invalidStore(op, root, l.VersionFile, "missing version file")
	case errors.Is(err, ErrVersionParse):
		return nil, &Error{Op: op, Root: root, Entry: l.VersionFile, Kind: ErrVersionParse, Msg: err.Error()}
	case err != nil:
		return nil, ioFailure(op, root, l.VersionFile, err)
	}
	// Later format versions may add compatibility handling here.
	if version != l.Version {
		return nil, &Error{Op: op, Root: root, Entry: l.VersionFile, Kind: ErrVersionMismatch,
			Msg: fmt.Sprintf("incompatible version: %d (supported: %d)", version, l.Version)}
	}

	isDir, err = statDir(l.DiscsPath(root))
	if err != nil {
		return nil, ioFailure(op, root, l.DiscsDir, err)
	}
	if !isDir {
		return nil, invalidStore(op, root, l.DiscsDir, "missing disc dir")
	}

	for _, bucket := range l.Buckets {
		isDir, err := statDir(l.BucketPath(root, bucket))
		if err != nil {
			return nil, ioFailure(op, root, bucket, err)
		}
		if !isDir {
			return nil, invalidStore(op, root, bucket, "missing bucket dir")
		}
	}

	s.logger.Debug("opened disc database", logging.Int("version", version))
	return s, nil
}

// statDir reports whether path is a directory. A missing path is not an
// error.
func statDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// readVersion parses the first line of the version file.
func readVersion(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: not a regular file", ErrVersionParse)
	}

	line, err := bufio.NewReader(io.LimitReader(f, 64)).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid version %q", ErrVersionParse, line)
	}
	return version, nil
}
