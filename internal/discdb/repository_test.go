package discdb_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"codplayer/internal/discdb"
	"codplayer/internal/discid"
	"codplayer/internal/testsupport"
	"codplayer/internal/toc"
)

const (
	sampleDiscID = "uP.sebZoiZSYakZh.g3coKrme8I-"
	sampleDBID   = "b8ffac79b6688994986a4661fa0ddca0aae67bc2"
	// punctDiscID uses all three substituted characters: '.', '_' and '-'.
	punctDiscID = "._._AAAAAAAAAAAAAAAAAAAAAAA-"
	punctDBID   = "fbffbf0000000000000000000000000000000000"
)

func TestDiscDirLayout(t *testing.T) {
	store := testsupport.MustInitStore(t)
	want := filepath.Join(store.Root(), "discs", "b", sampleDBID)
	if got := store.DiscDir(sampleDBID); got != want {
		t.Fatalf("DiscDir = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("DiscDir must not create the directory, stat err = %v", err)
	}
}

func TestCreateDiscWritesIDFile(t *testing.T) {
	store := testsupport.MustInitStore(t)

	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc returned error: %v", err)
	}
	if entry.DBID != sampleDBID {
		t.Fatalf("DBID = %q, want %q", entry.DBID, sampleDBID)
	}
	if entry.Dir != store.DiscDir(sampleDBID) {
		t.Fatalf("Dir = %q, want %q", entry.Dir, store.DiscDir(sampleDBID))
	}
	if entry.AudioFile != "b8ffac79.cdr" || entry.TOCFile != "b8ffac79.toc" {
		t.Fatalf("unexpected file names: %+v", entry)
	}
	if entry.RipLogPath != filepath.Join(entry.Dir, "b8ffac79.riplog") {
		t.Fatalf("RipLogPath = %q", entry.RipLogPath)
	}

	content, err := os.ReadFile(filepath.Join(entry.Dir, "b8ffac79.id"))
	if err != nil {
		t.Fatalf("read id file: %v", err)
	}
	if string(content) != sampleDiscID+"\n" {
		t.Fatalf("id file = %q", content)
	}
}

func TestCreateDiscIsRestartSafe(t *testing.T) {
	store := testsupport.MustInitStore(t)

	first, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("first CreateDisc: %v", err)
	}
	// Simulate an aborted rip that left a partial audio file and clobbered id.
	testsupport.WriteFile(t, filepath.Join(first.Dir, first.AudioFile), 128)
	if err := os.WriteFile(filepath.Join(first.Dir, "b8ffac79.id"), []byte("junk"), 0o644); err != nil {
		t.Fatalf("clobber id: %v", err)
	}

	second, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("second CreateDisc: %v", err)
	}
	if *first != *second {
		t.Fatalf("entries differ: %+v vs %+v", first, second)
	}

	entries, err := os.ReadDir(filepath.Join(store.Root(), "discs", "b"))
	if err != nil {
		t.Fatalf("read bucket: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != sampleDBID {
		t.Fatalf("expected exactly one disc directory, got %v", entries)
	}

	got, ok, err := store.ReadDiscID(sampleDBID)
	if err != nil || !ok {
		t.Fatalf("ReadDiscID = %q, %v, %v", got, ok, err)
	}
	if got != sampleDiscID {
		t.Fatalf("ReadDiscID = %q, want %q", got, sampleDiscID)
	}
	if _, err := os.Stat(filepath.Join(first.Dir, first.AudioFile)); err != nil {
		t.Fatalf("existing rip data must be left alone: %v", err)
	}
}

func TestCreateDiscRejectsInvalidDiscID(t *testing.T) {
	store := testsupport.MustInitStore(t)

	for _, id := range []string{"Xyz._-AbC", "", "not base64!", "AAAA"} {
		_, err := store.CreateDisc(id)
		if !errors.Is(err, discdb.ErrInvalidIdentifier) {
			t.Fatalf("CreateDisc(%q) error = %v, want ErrInvalidIdentifier", id, err)
		}
		if !errors.Is(err, discid.ErrInvalid) {
			t.Fatalf("CreateDisc(%q) error should wrap discid.ErrInvalid: %v", id, err)
		}
	}
}

func TestCreateDiscPathIsFile(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if err := os.WriteFile(store.DiscDir(sampleDBID), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := store.CreateDisc(sampleDiscID)
	if !errors.Is(err, discdb.ErrStoreIO) {
		t.Fatalf("CreateDisc error = %v, want ErrStoreIO", err)
	}
	if !strings.Contains(err.Error(), sampleDBID) {
		t.Fatalf("error should name the failing path: %v", err)
	}
}

func TestLookupIncompleteDiscIsAbsent(t *testing.T) {
	store := testsupport.MustInitStore(t)

	disc, ok, err := store.Lookup(sampleDBID)
	if err != nil || ok || disc != nil {
		t.Fatalf("Lookup of unknown disc = %v, %v, %v", disc, ok, err)
	}

	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	disc, ok, err = store.Lookup(sampleDBID)
	if err != nil || ok || disc != nil {
		t.Fatalf("Lookup of fresh entry = %v, %v, %v", disc, ok, err)
	}

	testsupport.WriteFile(t, filepath.Join(entry.Dir, entry.AudioFile), 64)
	_, ok, err = store.Lookup(sampleDBID)
	if err != nil || ok {
		t.Fatalf("Lookup without TOC = %v, %v", ok, err)
	}
}

func TestLookupRejectsInvalidDBID(t *testing.T) {
	store := testsupport.MustInitStore(t)

	for _, id := range []string{"", "b8ffac79", sampleDiscID, strings.Repeat("z", 40)} {
		_, ok, err := store.Lookup(id)
		if !errors.Is(err, discdb.ErrInvalidIdentifier) {
			t.Fatalf("Lookup(%q) error = %v, want ErrInvalidIdentifier", id, err)
		}
		if ok {
			t.Fatalf("Lookup(%q) reported found", id)
		}
	}

	if _, _, err := store.LookupDiscID("Xyz._-AbC"); !errors.Is(err, discdb.ErrInvalidIdentifier) {
		t.Fatalf("LookupDiscID error = %v, want ErrInvalidIdentifier", err)
	}
}

func TestLookupParsesTOC(t *testing.T) {
	store := testsupport.MustInitStore(t)
	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	testsupport.WriteRip(t, entry, 4096, testsupport.SampleTOC)

	disc, ok, err := store.Lookup(sampleDBID)
	if err != nil || !ok {
		t.Fatalf("Lookup = %v, %v", ok, err)
	}
	if disc.DiscID != sampleDiscID {
		t.Fatalf("DiscID = %q, want %q", disc.DiscID, sampleDiscID)
	}
	if disc.AudioTracks != 2 || disc.Catalog != "0123456789012" {
		t.Fatalf("unexpected disc: %+v", disc)
	}
}

func TestLookupTruncatesLargeTOC(t *testing.T) {
	var received []byte
	parser := toc.ParserFunc(func(data []byte, discID string) (*toc.Disc, error) {
		received = data
		return &toc.Disc{DiscID: discID, Raw: data}, nil
	})
	store := testsupport.MustInitStore(t, discdb.WithParser(parser))
	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	limit := store.Layout().MaxTOCBytes
	testsupport.WriteRip(t, entry, 1, strings.Repeat("x", int(limit)+1000))

	if _, ok, err := store.Lookup(sampleDBID); err != nil || !ok {
		t.Fatalf("Lookup = %v, %v", ok, err)
	}
	if int64(len(received)) != limit {
		t.Fatalf("parser received %d bytes, want %d", len(received), limit)
	}
}

func TestLookupReportsUnparsableTOC(t *testing.T) {
	store := testsupport.MustInitStore(t)
	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	testsupport.WriteRip(t, entry, 1, "CD_DA\n")

	_, ok, err := store.Lookup(sampleDBID)
	if !errors.Is(err, discdb.ErrStoreInvalid) || !errors.Is(err, toc.ErrNoAudioTracks) {
		t.Fatalf("Lookup error = %v, want ErrStoreInvalid wrapping ErrNoAudioTracks", err)
	}
	if ok {
		t.Fatal("Lookup reported found on error")
	}
}

func TestLookupReportsUnreadableTOC(t *testing.T) {
	store := testsupport.MustInitStore(t)
	entry, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(entry.Dir, entry.AudioFile), 1)
	// A directory in place of the TOC exists but cannot be read as a file.
	if err := os.Mkdir(filepath.Join(entry.Dir, entry.TOCFile), 0o755); err != nil {
		t.Fatalf("mkdir toc: %v", err)
	}

	_, _, err = store.Lookup(sampleDBID)
	if !errors.Is(err, discdb.ErrStoreIO) {
		t.Fatalf("Lookup error = %v, want ErrStoreIO", err)
	}
}

func TestIDsListsBucketsInOrder(t *testing.T) {
	store := testsupport.MustInitStore(t)
	for _, id := range []string{sampleDiscID, punctDiscID, "ASNFZ4mrze8BI0VniavN7wEjRWc-", "oLHC0.T1prfI2eDxorPE1eb3qLk-"} {
		if _, err := store.CreateDisc(id); err != nil {
			t.Fatalf("CreateDisc(%q): %v", id, err)
		}
	}

	var got []string
	for id, err := range store.IDs() {
		if err != nil {
			t.Fatalf("IDs yielded error: %v", err)
		}
		got = append(got, id)
	}
	want := []string{
		"0123456789abcdef0123456789abcdef01234567",
		"a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9",
		sampleDBID,
		punctDBID,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}

	// The sequence is restartable.
	var again []string
	for id := range store.IDs() {
		again = append(again, id)
	}
	if !slices.Equal(again, want) {
		t.Fatalf("second pass = %v, want %v", again, want)
	}
}

func TestIDsSkipsForeignAndMisplacedEntries(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if _, err := store.CreateDisc(sampleDiscID); err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	bucketA := filepath.Join(store.Root(), "discs", "a")
	junk := []string{
		filepath.Join(bucketA, sampleDBID),
		filepath.Join(bucketA, "tmp"),
		filepath.Join(bucketA, "a0b1c2d3"),
		filepath.Join(store.Root(), "discs", "b", "b8ffac79b6688994986a4661fa0ddca0aae67bc2.partial"),
	}
	for _, path := range junk {
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
	}

	var got []string
	for id, err := range store.IDs() {
		if err != nil {
			t.Fatalf("IDs yielded error: %v", err)
		}
		got = append(got, id)
	}
	if !slices.Equal(got, []string{sampleDBID}) {
		t.Fatalf("IDs = %v, want only %s", got, sampleDBID)
	}
}

func TestIDsStopsEarly(t *testing.T) {
	store := testsupport.MustInitStore(t)
	for _, id := range []string{sampleDiscID, punctDiscID, "ASNFZ4mrze8BI0VniavN7wEjRWc-"} {
		if _, err := store.CreateDisc(id); err != nil {
			t.Fatalf("CreateDisc(%q): %v", id, err)
		}
	}
	// Breaking out after the first bucket never reaches the broken one.
	if err := os.RemoveAll(filepath.Join(store.Root(), "discs", "f")); err != nil {
		t.Fatalf("remove bucket: %v", err)
	}

	count := 0
	for _, err := range store.IDs() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
		break
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestIDsFailsOnUnreadableBucket(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if _, err := store.CreateDisc(sampleDiscID); err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	if err := os.RemoveAll(filepath.Join(store.Root(), "discs", "c")); err != nil {
		t.Fatalf("remove bucket: %v", err)
	}

	var ids []string
	var failure error
	for id, err := range store.IDs() {
		if err != nil {
			failure = err
			continue
		}
		ids = append(ids, id)
	}
	if !slices.Equal(ids, []string{sampleDBID}) {
		t.Fatalf("ids before failure = %v", ids)
	}
	assertEntry(t, failure, discdb.ErrStoreIO, "c")
}

func TestEntriesReportsFileState(t *testing.T) {
	store := testsupport.MustInitStore(t)
	complete, err := store.CreateDisc(sampleDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	testsupport.WriteRip(t, complete, 2048, testsupport.SampleTOC)
	if _, err := store.CreateDisc(punctDiscID); err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}

	var statuses []discdb.DiscStatus
	for status, err := range store.Entries() {
		if err != nil {
			t.Fatalf("Entries yielded error: %v", err)
		}
		statuses = append(statuses, status)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	first, second := statuses[0], statuses[1]
	if first.DBID != sampleDBID || !first.Complete() || first.AudioBytes != 2048 || !first.HasID {
		t.Fatalf("unexpected status for complete disc: %+v", first)
	}
	if first.DiscID != sampleDiscID {
		t.Fatalf("DiscID = %q", first.DiscID)
	}
	if second.DBID != punctDBID || second.Complete() || !second.HasID || second.HasRipLog {
		t.Fatalf("unexpected status for pending disc: %+v", second)
	}
}

// Init, create, rip and look up a disc whose ID uses every substituted character.
func TestEndToEnd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store, err := discdb.Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	version, err := os.ReadFile(filepath.Join(root, ".codplayerdb"))
	if err != nil || strings.TrimSpace(string(version)) != "1" {
		t.Fatalf("version file = %q, %v", version, err)
	}

	entry, err := store.CreateDisc(punctDiscID)
	if err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	wantDir := filepath.Join(root, "discs", "f", punctDBID)
	if entry.Dir != wantDir {
		t.Fatalf("Dir = %q, want %q", entry.Dir, wantDir)
	}
	idContent, err := os.ReadFile(filepath.Join(wantDir, "fbffbf00.id"))
	if err != nil {
		t.Fatalf("read id: %v", err)
	}
	if string(idContent) != punctDiscID+"\n" {
		t.Fatalf("id file = %q", idContent)
	}

	if _, ok, err := store.LookupDiscID(punctDiscID); err != nil || ok {
		t.Fatalf("Lookup before rip = %v, %v", ok, err)
	}

	testsupport.WriteRip(t, entry, 2352, testsupport.SampleTOC)

	reopened, err := discdb.Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	disc, ok, err := reopened.LookupDiscID(punctDiscID)
	if err != nil || !ok {
		t.Fatalf("Lookup after rip = %v, %v", ok, err)
	}
	if disc.DiscID != punctDiscID || string(disc.Raw) != testsupport.SampleTOC {
		t.Fatalf("unexpected disc: %+v", disc)
	}
}

func TestStatusOfSingleDisc(t *testing.T) {
	store := testsupport.MustInitStore(t)

	status, err := store.Status(sampleDBID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.HasID || status.HasAudio || status.DiscID != sampleDiscID {
		t.Fatalf("unexpected status for absent disc: %+v", status)
	}

	if _, err := store.Status("nope"); !errors.Is(err, discdb.ErrInvalidIdentifier) {
		t.Fatalf("Status error = %v, want ErrInvalidIdentifier", err)
	}
}
