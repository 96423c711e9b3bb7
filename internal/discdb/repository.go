package discdb

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"codplayer/internal/discid"
	"codplayer/internal/fileutil"
	"codplayer/internal/logging"
	"codplayer/internal/toc"
)

// DiscEntry tells the ripping process where to write a disc.
type DiscEntry struct {
	DiscID string `json:"disc_id"`
	DBID   string `json:"db_id"`
	// Dir is the disc directory; AudioFile and TOCFile are relative to it.
	Dir        string `json:"dir"`
	AudioFile  string `json:"audio_file"`
	TOCFile    string `json:"toc_file"`
	RipLogPath string `json:"rip_log_path"`
}

// DiscStatus reports which files of a listed disc are present.
type DiscStatus struct {
	DBID         string `json:"db_id"`
	DiscID       string `json:"disc_id"`
	Dir          string `json:"dir"`
	HasID        bool   `json:"has_id"`
	HasAudio     bool   `json:"has_audio"`
	HasTOC       bool   `json:"has_toc"`
	HasCookedTOC bool   `json:"has_cooked_toc"`
	HasRipLog    bool   `json:"has_rip_log"`
	AudioBytes   int64  `json:"audio_bytes"`
}

// Complete reports whether the disc can be looked up.
func (d DiscStatus) Complete() bool {
	return d.HasAudio && d.HasTOC
}

// DiscDir returns the directory of a disc, whether or not it exists.
func (s *Store) DiscDir(dbID string) string {
	return s.layout.DiscPath(s.root, dbID)
}

// IDs lists the db IDs of all discs, bucket by bucket in ascending order.
// Each bucket is read only when the iteration reaches it, and breaking out
// of the loop stops further reads. Entries that are not valid db IDs or sit
// in the wrong bucket are skipped. The listing includes discs that are
// still being ripped and cannot be looked up yet.
//
// A bucket that cannot be read yields a single ErrStoreIO error naming it
// and ends the sequence.
func (s *Store) IDs() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, bucket := range s.layout.Buckets {
			entries, err := os.ReadDir(s.layout.BucketPath(s.root, bucket))
			if err != nil {
				yield("", ioFailure("list discs", s.root, bucket, err))
				return
			}
			for _, entry := range entries {
				name := entry.Name()
				if !discid.Valid(name) || discid.Bucket(name) != bucket {
					continue
				}
				if !yield(name, nil) {
					return
				}
			}
		}
	}
}

// Entries pairs every listed disc with the state of its files.
func (s *Store) Entries() iter.Seq2[DiscStatus, error] {
	return func(yield func(DiscStatus, error) bool) {
		for dbID, err := range s.IDs() {
			if err != nil {
				yield(DiscStatus{}, err)
				return
			}
			status, err := s.status(dbID)
			if !yield(status, err) || err != nil {
				return
			}
		}
	}
}

// Status reports the file state of one disc. A disc without a directory
// yields a status with every Has field false.
func (s *Store) Status(dbID string) (DiscStatus, error) {
	if !discid.Valid(dbID) {
		return DiscStatus{}, invalidIdentifier("stat disc", s.root, dbID, discid.ErrInvalid)
	}
	return s.status(dbID)
}

func (s *Store) status(dbID string) (DiscStatus, error) {
	const op = "stat disc"
	dir := s.DiscDir(dbID)
	files := s.layout.Files(dbID)
	status := DiscStatus{DBID: dbID, Dir: dir}
	status.DiscID, _ = discid.Decode(dbID)

	checks := []struct {
		name string
		dst  *bool
	}{
		{files.ID, &status.HasID},
		{files.Audio, &status.HasAudio},
		{files.TOC, &status.HasTOC},
		{files.CookedTOC, &status.HasCookedTOC},
		{files.RipLog, &status.HasRipLog},
	}
	for _, check := range checks {
		info, err := os.Stat(filepath.Join(dir, check.name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return DiscStatus{}, ioFailure(op, s.root, filepath.Join(dir, check.name), err)
		}
		*check.dst = true
		if check.name == files.Audio {
			status.AudioBytes = info.Size()
		}
	}
	return status, nil
}

// Lookup returns the disc stored under dbID. The boolean is false when
// the audio or TOC file is missing, the normal state while a rip is in
// progress. An invalid dbID is an ErrInvalidIdentifier error.
//
// At most Layout.MaxTOCBytes of the TOC are read and handed to the
// store's TOC parser.
func (s *Store) Lookup(dbID string) (*toc.Disc, bool, error) {
	const op = "lookup"
	if !discid.Valid(dbID) {
		return nil, false, invalidIdentifier(op, s.root, dbID, fmt.Errorf("%w: not a 40 character hex db id", discid.ErrInvalid))
	}
	dir := s.DiscDir(dbID)
	files := s.layout.Files(dbID)
	audioPath := filepath.Join(dir, files.Audio)
	tocPath := filepath.Join(dir, files.TOC)

	// TODO: prefer the cooked TOC over the original once edited TOCs are parsed.
	for _, path := range []string{audioPath, tocPath} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("disc not complete", logging.String(logging.FieldDBID, dbID), logging.String("missing", filepath.Base(path)))
				return nil, false, nil
			}
			return nil, false, ioFailure(op, s.root, path, err)
		}
	}

	data, err := readCapped(tocPath, s.layout.MaxTOCBytes)
	if err != nil {
		return nil, false, ioFailure(op, s.root, tocPath, err)
	}
	discID, err := discid.Decode(dbID)
	if err != nil {
		return nil, false, invalidIdentifier(op, s.root, dbID, err)
	}
	disc, err := s.parser.Parse(data, discID)
	if err != nil {
		return nil, false, &Error{Op: op, Root: s.root, Entry: tocPath, Kind: ErrStoreInvalid, Msg: "unreadable TOC", Err: err}
	}
	return disc, true, nil
}

// LookupDiscID is Lookup keyed by MusicBrainz disc ID.
func (s *Store) LookupDiscID(discID string) (*toc.Disc, bool, error) {
	dbID, err := discid.Encode(discID)
	if err != nil {
		return nil, false, invalidIdentifier("lookup", s.root, discID, err)
	}
	return s.Lookup(dbID)
}

// CreateDisc prepares the directory a disc is ripped into and records its
// disc ID in the .id file. An existing directory, e.g. from an aborted
// rip, is reused and the .id file rewritten, so calling CreateDisc again
// for the same disc succeeds.
func (s *Store) CreateDisc(discID string) (*DiscEntry, error) {
	const op = "create disc"
	dbID, err := discid.Encode(discID)
	if err != nil {
		return nil, invalidIdentifier(op, s.root, discID, err)
	}
	if !discid.Valid(dbID) {
		return nil, invalidIdentifier(op, s.root, discID,
			fmt.Errorf("%w: encodes to %d hex characters, want %d", discid.ErrInvalid, len(dbID), discid.Length))
	}

	dir := s.DiscDir(dbID)
	created := true
	if err := os.Mkdir(dir, 0o755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return nil, ioFailure(op, s.root, dir, err)
		}
		isDir, statErr := statDir(dir)
		if statErr != nil {
			return nil, ioFailure(op, s.root, dir, statErr)
		}
		if !isDir {
			return nil, &Error{Op: op, Root: s.root, Entry: dir, Kind: ErrStoreIO, Msg: "disc path exists and is not a directory"}
		}
		created = false
	}

	files := s.layout.Files(dbID)
	idPath := filepath.Join(dir, files.ID)
	if err := fileutil.WriteFileAtomic(idPath, []byte(discID+"\n"), 0o644); err != nil {
		return nil, ioFailure(op, s.root, idPath, err)
	}

	s.logger.Info("prepared disc directory",
		logging.String(logging.FieldDiscID, discID),
		logging.String(logging.FieldDBID, dbID),
		logging.Bool("reused", !created),
	)

	return &DiscEntry{
		DiscID:     discID,
		DBID:       dbID,
		Dir:        dir,
		AudioFile:  files.Audio,
		TOCFile:    files.TOC,
		RipLogPath: filepath.Join(dir, files.RipLog),
	}, nil
}

// ReadDiscID returns the disc ID recorded in a disc's .id file. The
// boolean is false when the file does not exist.
func (s *Store) ReadDiscID(dbID string) (string, bool, error) {
	const op = "read disc id"
	if !discid.Valid(dbID) {
		return "", false, invalidIdentifier(op, s.root, dbID, discid.ErrInvalid)
	}
	path := filepath.Join(s.DiscDir(dbID), s.layout.Files(dbID).ID)
	data, err := readCapped(path, 1024)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, ioFailure(op, s.root, path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), true, nil
}

func readCapped(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}
