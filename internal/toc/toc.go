package toc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoAudioTracks is returned for a TOC without any audio track.
var ErrNoAudioTracks = errors.New("toc: no audio tracks")

// Disc summarizes a ripped disc.
type Disc struct {
	DiscID      string `json:"disc_id"`
	Catalog     string `json:"catalog,omitempty"`
	DataFile    string `json:"data_file,omitempty"`
	Title       string `json:"title,omitempty"`
	Performer   string `json:"performer,omitempty"`
	AudioTracks int    `json:"audio_tracks"`
	Raw         []byte `json:"-"`
}

// Parser builds a Disc from raw TOC bytes.
type Parser interface {
	Parse(data []byte, discID string) (*Disc, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(data []byte, discID string) (*Disc, error)

// Parse calls f.
func (f ParserFunc) Parse(data []byte, discID string) (*Disc, error) {
	return f(data, discID)
}

// DefaultParser reads cdrdao TOC files.
var DefaultParser Parser = ParserFunc(Parse)

// Parse reads a cdrdao TOC. Data tracks are skipped; CD-TEXT is only read
// from the disc-level block before the first track.
func Parse(data []byte, discID string) (*Disc, error) {
	disc := &Disc{DiscID: discID, Raw: data}
	inTrack := false
	audioTrack := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		keyword, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch keyword {
		case "CATALOG":
			value, err := unquote(rest)
			if err != nil {
				return nil, fmt.Errorf("toc: line %d: catalog: %w", lineNo, err)
			}
			disc.Catalog = value
		case "TRACK":
			inTrack = true
			audioTrack = rest == "AUDIO"
			if audioTrack {
				disc.AudioTracks++
			}
		case "FILE", "AUDIOFILE":
			if !audioTrack || disc.DataFile != "" {
				continue
			}
			value, err := unquote(leadingQuoted(rest))
			if err != nil {
				return nil, fmt.Errorf("toc: line %d: file: %w", lineNo, err)
			}
			disc.DataFile = value
		case "TITLE", "PERFORMER":
			if inTrack {
				continue
			}
			value, err := unquote(rest)
			if err != nil {
				return nil, fmt.Errorf("toc: line %d: %s: %w", lineNo, strings.ToLower(keyword), err)
			}
			if keyword == "TITLE" && disc.Title == "" {
				disc.Title = value
			}
			if keyword == "PERFORMER" && disc.Performer == "" {
				disc.Performer = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("toc: scan: %w", err)
	}
	if disc.AudioTracks == 0 {
		return nil, ErrNoAudioTracks
	}
	return disc, nil
}

// leadingQuoted returns the first quoted token of value, e.g. the file
// name in `"data.cdr" 0 02:54:53`.
func leadingQuoted(value string) string {
	if !strings.HasPrefix(value, `"`) {
		return value
	}
	for i := 1; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '"':
			return value[:i+1]
		}
	}
	return value
}

// unquote decodes a cdrdao string literal. Non-ASCII bytes are written as
// octal escapes of ISO-8859-1 text.
func unquote(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", value)
	}
	body := value[1 : len(value)-1]
	raw := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			raw = append(raw, c)
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("dangling escape in %q", value)
		}
		if i+3 < len(body) && body[i+1] <= '3' && isOctal(body[i+1]) && isOctal(body[i+2]) && isOctal(body[i+3]) {
			raw = append(raw, (body[i+1]-'0')<<6|(body[i+2]-'0')<<3|(body[i+3]-'0'))
			i += 3
			continue
		}
		raw = append(raw, body[i+1])
		i++
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(decoded), nil
}

func isOctal(c byte) bool {
	return '0' <= c && c <= '7'
}
