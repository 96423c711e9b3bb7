package preflight

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"codplayer/internal/config"
	"codplayer/internal/discdb"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	// Optional checks are reported but do not fail the run.
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// RunAll executes the checks for the configured database.
func RunAll(cfg *config.Config, opts ...discdb.Option) []Result {
	if cfg == nil {
		return nil
	}
	dir := cfg.Database.Dir
	results := []Result{CheckDirectoryAccess("Database directory", dir)}
	if results[0].Passed {
		results = append(results, CheckStore("Database layout", dir, opts...))
	}
	results = append(results, CheckTool("cdrdao", "cdrdao", true))
	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStore opens the database at root and reports the first failing
// validation step, or the number of disc entries on success.
func CheckStore(name, root string, opts ...discdb.Option) Result {
	store, err := discdb.Open(root, opts...)
	if err != nil {
		return Result{Name: name, Detail: summarizeStoreError(err)}
	}
	count := 0
	for _, err := range store.IDs() {
		if err != nil {
			return Result{Name: name, Detail: summarizeStoreError(err)}
		}
		count++
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("format v%d, %d discs", store.Layout().Version, count)}
}

// CheckTool reports whether command is on PATH.
func CheckTool(name, command string, optional bool) Result {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return Result{Name: name, Optional: optional, Detail: "command not configured"}
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		return Result{Name: name, Optional: optional, Detail: fmt.Sprintf("binary %q not found", cmd)}
	}
	return Result{Name: name, Passed: true, Optional: optional, Detail: path}
}

func summarizeStoreError(err error) string {
	switch {
	case errors.Is(err, discdb.ErrVersionMismatch):
		return "unsupported format version (" + err.Error() + ")"
	case errors.Is(err, discdb.ErrStoreInvalid):
		return "invalid: " + err.Error()
	default:
		return err.Error()
	}
}
