package discdb

import (
	"path/filepath"

	"codplayer/internal/discid"
)

// Layout is the fixed on-disk schema of a disc database. Store keeps its
// own copy; the zero value is not usable, use DefaultLayout.
type Layout struct {
	Version     int
	VersionFile string
	DiscsDir    string
	Buckets     [16]string

	IDSuffix        string
	AudioSuffix     string
	TOCSuffix       string
	CookedTOCSuffix string
	RipLogSuffix    string

	// MaxTOCBytes caps how much of a TOC file is read; the rest is ignored.
	MaxTOCBytes int64
}

// DiscFiles names the files of one disc, relative to its directory.
type DiscFiles struct {
	ID        string `json:"id_file"`
	Audio     string `json:"audio_file"`
	TOC       string `json:"toc_file"`
	CookedTOC string `json:"cooked_toc_file"`
	RipLog    string `json:"rip_log_file"`
}

// DefaultLayout returns the layout of format version 1.
func DefaultLayout() Layout {
	return Layout{
		Version:     1,
		VersionFile: ".codplayerdb",
		DiscsDir:    "discs",
		Buckets: [16]string{
			"0", "1", "2", "3", "4", "5", "6", "7",
			"8", "9", "a", "b", "c", "d", "e", "f",
		},
		IDSuffix:        ".id",
		AudioSuffix:     ".cdr",
		TOCSuffix:       ".toc",
		CookedTOCSuffix: ".cod",
		RipLogSuffix:    ".riplog",
		MaxTOCBytes:     50000,
	}
}

// VersionPath returns the path of the version marker file.
func (l Layout) VersionPath(root string) string {
	return filepath.Join(root, l.VersionFile)
}

// DiscsPath returns the directory holding the buckets.
func (l Layout) DiscsPath(root string) string {
	return filepath.Join(root, l.DiscsDir)
}

// BucketPath returns the directory of one bucket.
func (l Layout) BucketPath(root, bucket string) string {
	return filepath.Join(root, l.DiscsDir, bucket)
}

// DiscPath returns the directory of a disc. dbID must be valid.
func (l Layout) DiscPath(root, dbID string) string {
	return filepath.Join(root, l.DiscsDir, discid.Bucket(dbID), dbID)
}

// Files returns the file names of a disc. dbID must be valid.
func (l Layout) Files(dbID string) DiscFiles {
	base := discid.FilenameBase(dbID)
	return DiscFiles{
		ID:        base + l.IDSuffix,
		Audio:     base + l.AudioSuffix,
		TOC:       base + l.TOCSuffix,
		CookedTOC: base + l.CookedTOCSuffix,
		RipLog:    base + l.RipLogSuffix,
	}
}
