package discid

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// Length is the number of hex characters in a database ID.
	Length = 40
	// FilenameBaseLength is the number of leading characters used as the
	// stem of every per-disc file.
	FilenameBaseLength = 8
)

// ErrInvalid reports a disc ID or database ID that cannot be translated.
var ErrInvalid = errors.New("invalid disc id")

// charPair maps one MusicBrainz character to its standard base64 counterpart.
type charPair struct {
	disc   byte
	base64 byte
}

var alphabetSwaps = [3]charPair{
	{disc: '.', base64: '+'},
	{disc: '_', base64: '/'},
	{disc: '-', base64: '='},
}

var (
	discToBase64 = buildSwapTable(func(p charPair) (byte, byte) { return p.disc, p.base64 })
	base64ToDisc = buildSwapTable(func(p charPair) (byte, byte) { return p.base64, p.disc })
)

func buildSwapTable(dir func(charPair) (byte, byte)) [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}
	for _, pair := range alphabetSwaps {
		from, to := dir(pair)
		table[from] = to
	}
	return table
}

func swap(value string, table *[256]byte) string {
	out := make([]byte, len(value))
	for i := 0; i < len(value); i++ {
		out[i] = table[value[i]]
	}
	return string(out)
}

// strict rejects non-canonical input (non-zero padding bits), so each disc
// ID maps to exactly one byte sequence and back.
var encoding = base64.StdEncoding.Strict()

// Encode translates a MusicBrainz disc ID into database form.
func Encode(discID string) (string, error) {
	if strings.ContainsAny(discID, "\r\n") {
		return "", fmt.Errorf("%w %q: contains line break", ErrInvalid, discID)
	}
	raw, err := encoding.DecodeString(swap(discID, &discToBase64))
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalid, discID, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty disc id", ErrInvalid)
	}
	return hex.EncodeToString(raw), nil
}

// Decode translates a database ID back into a MusicBrainz disc ID. Upper
// case hex is accepted.
func Decode(dbID string) (string, error) {
	raw, err := hex.DecodeString(dbID)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalid, dbID, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty db id", ErrInvalid)
	}
	return swap(encoding.EncodeToString(raw), &base64ToDisc), nil
}

// Valid reports whether dbID is exactly 40 hex characters of either case.
// Directory scans use it to skip foreign or half-written entries.
func Valid(dbID string) bool {
	if len(dbID) != Length {
		return false
	}
	for i := 0; i < len(dbID); i++ {
		if !isHex(dbID[i]) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Bucket returns the bucket directory name for a database ID.
func Bucket(dbID string) string {
	if dbID == "" {
		return ""
	}
	return strings.ToLower(dbID[:1])
}

// FilenameBase returns the stem shared by all files of a disc.
func FilenameBase(dbID string) string {
	if len(dbID) < FilenameBaseLength {
		return dbID
	}
	return dbID[:FilenameBaseLength]
}
