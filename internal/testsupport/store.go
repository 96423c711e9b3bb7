package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"codplayer/internal/discdb"
)

// SampleTOC is a minimal cdrdao TOC with two audio tracks.
const SampleTOC = `CD_DA

CATALOG "0123456789012"

TRACK AUDIO
TWO_CHANNEL_AUDIO
FILE "data.cdr" 0 02:54:53

TRACK AUDIO
TWO_CHANNEL_AUDIO
FILE "data.cdr" 02:54:53 03:29:65
`

// MustInitStore initializes a disc database in a fresh temp directory.
func MustInitStore(t testing.TB, opts ...discdb.Option) *discdb.Store {
	t.Helper()

	root := filepath.Join(t.TempDir(), "db")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("mkdir db: %v", err)
	}
	store, err := discdb.Init(root, opts...)
	if err != nil {
		t.Fatalf("discdb.Init: %v", err)
	}
	return store
}

// WriteRip writes audio of the given size and a TOC into a prepared disc
// directory, completing the rip.
func WriteRip(t testing.TB, entry *discdb.DiscEntry, audioSize int64, tocData string) {
	t.Helper()

	WriteFile(t, filepath.Join(entry.Dir, entry.AudioFile), audioSize)
	if err := os.WriteFile(filepath.Join(entry.Dir, entry.TOCFile), []byte(tocData), 0o644); err != nil {
		t.Fatalf("write toc: %v", err)
	}
}
