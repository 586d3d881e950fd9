package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"segue/internal/config"
	"segue/internal/preflight"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckDirectoryAccess("dir", dir)
	if !result.Passed {
		t.Fatalf("writable directory failed: %+v", result)
	}

	result = preflight.CheckDirectoryAccess("dir", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("missing directory passed: %+v", result)
	}

	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = preflight.CheckDirectoryAccess("dir", file)
	if result.Passed {
		t.Fatalf("regular file passed as directory: %+v", result)
	}
}

func TestCheckBinary(t *testing.T) {
	if result := preflight.CheckBinary("shell", "sh"); !result.Passed {
		t.Fatalf("sh should resolve: %+v", result)
	}
	if result := preflight.CheckBinary("missing", "segue-no-such-binary"); result.Passed {
		t.Fatalf("nonexistent binary passed: %+v", result)
	}
	if result := preflight.CheckBinary("blank", "  "); result.Passed {
		t.Fatalf("blank command passed: %+v", result)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()

	if result := preflight.CheckDiskSpace("space", dir, 1); !result.Passed {
		t.Fatalf("one byte of free space should pass: %+v", result)
	}
	// No filesystem has an exbibyte free.
	if result := preflight.CheckDiskSpace("space", dir, 1<<60); result.Passed {
		t.Fatalf("impossible requirement passed: %+v", result)
	}
	if result := preflight.CheckDiskSpace("space", filepath.Join(dir, "missing"), 1); result.Passed {
		t.Fatalf("missing path passed: %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	if results := preflight.RunAll(context.Background(), nil); results != nil {
		t.Fatalf("nil config should yield nil results, got %v", results)
	}

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.TempDir = filepath.Join(root, "tmp")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.QueueDB = filepath.Join(root, "queue.db")
	cfg.Tools.FFmpeg = "sh"
	cfg.Tools.FFprobe = "sh"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := preflight.RunAll(context.Background(), &cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(results))
	}
	if !preflight.Passed(results) {
		t.Fatalf("healthy environment failed: %+v", results)
	}

	cfg.Tools.FFmpeg = "segue-no-such-binary"
	results = preflight.RunAll(context.Background(), &cfg)
	if preflight.Passed(results) {
		t.Fatal("broken ffmpeg should fail the run")
	}
}
