package texts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanSortedTxtOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md", "C.TXT"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatalf("failed to make subdir: %v", err)
	}

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("failed to scan: %v", err)
	}
	want := []string{
		filepath.Join(dir, "C.TXT"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i, path := range want {
		if files[i] != path {
			t.Fatalf("file %d: expected %q, got %q", i, path, files[i])
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing folder must not be an error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "text")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("failed to ensure folder: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected folder to exist: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure must be idempotent: %v", err)
	}
}

func TestLoadNormalizesLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\rthree\n"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	content, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if content != "one\ntwo\nthree\n" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for an empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestSampleNotEmpty(t *testing.T) {
	if Sample() == "" {
		t.Fatalf("sample text must not be empty")
	}
}
