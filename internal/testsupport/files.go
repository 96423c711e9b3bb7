package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// cdFrameSize is one CD audio sector: 588 stereo 16-bit samples.
const cdFrameSize = 2352

// WriteFile writes size bytes of fake PCM audio to path, creating parent
// directories. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	// Alternating left/right samples make hex dumps easy to recognise.
	frame := bytes.Repeat([]byte{0x10, 0x00, 0xf0, 0xff}, cdFrameSize/4)
	data := bytes.Repeat(frame, int(size/cdFrameSize)+1)[:size]
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
