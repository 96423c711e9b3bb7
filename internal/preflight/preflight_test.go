package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codplayer/internal/discdb"
	"codplayer/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckStore_OK(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if _, err := store.CreateDisc("uP.sebZoiZSYakZh.g3coKrme8I-"); err != nil {
		t.Fatalf("CreateDisc: %v", err)
	}
	result := CheckStore("db", store.Root())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != "format v1, 1 discs" {
		t.Fatalf("detail = %q", result.Detail)
	}
}

func TestCheckStore_MissingBucket(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if err := os.Remove(filepath.Join(store.Root(), "discs", "7")); err != nil {
		t.Fatal(err)
	}
	result := CheckStore("db", store.Root())
	if result.Passed {
		t.Fatal("expected failure for missing bucket")
	}
	if !strings.Contains(result.Detail, "(7)") {
		t.Fatalf("detail should name the bucket: %s", result.Detail)
	}
}

func TestCheckStore_VersionMismatch(t *testing.T) {
	store := testsupport.MustInitStore(t)
	if err := os.WriteFile(store.Layout().VersionPath(store.Root()), []byte("2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckStore("db", store.Root())
	if result.Passed || !strings.HasPrefix(result.Detail, "unsupported format version") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckTool(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	if result := CheckTool("present", present, false); !result.Passed || result.Detail != present {
		t.Fatalf("unexpected result: %+v", result)
	}
	missing := CheckTool("missing", "clearly-not-present-binary", true)
	if missing.Passed || !missing.Optional {
		t.Fatalf("unexpected result: %+v", missing)
	}
	if Failed([]Result{missing}) {
		t.Fatal("optional failure should not fail the run")
	}
	if !Failed([]Result{CheckTool("empty", " ", false)}) {
		t.Fatal("required failure should fail the run")
	}
}

func TestRunAllSkipsLayoutWhenDirectoryMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Database.Dir = filepath.Join(t.TempDir(), "absent")

	results := RunAll(cfg)
	if len(results) != 2 {
		t.Fatalf("expected directory and tool checks, got %+v", results)
	}
	if !Failed(results) {
		t.Fatal("expected failure")
	}
}

func TestRunAllOnInitializedStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := discdb.Init(cfg.Database.Dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	results := RunAll(cfg)
	if len(results) != 3 || !results[0].Passed || !results[1].Passed {
		t.Fatalf("unexpected results: %+v", results)
	}
}
