package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	filename := "text/alice.txt"
	return Snapshot{
		Filename:    &filename,
		Position:    42,
		ElapsedTime: 73.5,
		Correct:     40,
		Incorrect:   2,
		Score:       315.5,
		Streak:      6,
		Multiplier:  1.1,
		Timestamp:   time.Now().Format(TimestampLayout),
		WrapWidth:   76,
		RawEntered:  EncodeRunes([]rune("it was ")),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.txt.save.json")
	want := sampleSnapshot()

	if err := Save(path, want); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if got.Filename == nil || *got.Filename != *want.Filename {
		t.Fatalf("filename mismatch: %v", got.Filename)
	}
	if got.Position != want.Position || got.ElapsedTime != want.ElapsedTime {
		t.Fatalf("progress mismatch: %+v", got)
	}
	if got.Score != want.Score || got.Streak != want.Streak || got.Multiplier != want.Multiplier {
		t.Fatalf("score state mismatch: %+v", got)
	}
	if got.WrapWidth != want.WrapWidth {
		t.Fatalf("wrap width mismatch: %d", got.WrapWidth)
	}
	if string(DecodeRunes(got.RawEntered)) != "it was " {
		t.Fatalf("raw buffer mismatch: %v", got.RawEntered)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := Save(path, Snapshot{Position: 1, Multiplier: 0.5}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := Save(path, Snapshot{Position: 2, Multiplier: 0.6}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if got.Position != 2 {
		t.Fatalf("expected the newer save, got position %d", got.Position)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "save.json"), sampleSnapshot()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp_save") {
			t.Fatalf("leftover temp file %q", entry.Name())
		}
	}
}

func TestSaveFailureKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	// Renaming a file over a non-empty directory fails, simulating a
	// failure at the final step of the atomic save.
	path := filepath.Join(dir, "save.json")
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatalf("failed to set up: %v", err)
	}
	if err := Save(path, sampleSnapshot()); err == nil {
		t.Fatalf("expected save to fail")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp_save") {
			t.Fatalf("failed save left temp file %q", entry.Name())
		}
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "save.json")
	if err := Save(path, sampleSnapshot()); err == nil {
		t.Fatalf("expected save into a missing directory to fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative position", `{"filename":null,"position":-1,"multiplier":0.5}`},
		{"negative elapsed", `{"filename":null,"position":0,"elapsed_time":-2,"multiplier":0.5}`},
		{"negative streak", `{"filename":null,"position":0,"streak":-3,"multiplier":0.5}`},
		{"negative multiplier", `{"filename":null,"position":0,"multiplier":-0.5}`},
		{"multi-char raw entry", `{"filename":null,"position":2,"multiplier":0.5,"raw_entered":["a","bc"]}`},
		{"empty raw entry", `{"filename":null,"position":1,"multiplier":0.5,"raw_entered":[""]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("failed to write: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestDefaultPathFor(t *testing.T) {
	got := DefaultPathFor(filepath.Join("text", "alice.txt"))
	want := filepath.Join("text", "alice.txt.save.json")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEncodeDecodeRunes(t *testing.T) {
	runes := []rune("ab\nü!")
	entries := EncodeRunes(runes)
	if len(entries) != len(runes) {
		t.Fatalf("expected %d entries, got %d", len(runes), len(entries))
	}
	if entries[2] != "\n" {
		t.Fatalf("expected newline entry, got %q", entries[2])
	}
	if string(DecodeRunes(entries)) != string(runes) {
		t.Fatalf("round trip mismatch: %q", string(DecodeRunes(entries)))
	}
}
