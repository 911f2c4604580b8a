// Package snapshot persists resumable typing session state as JSON.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// TimestampLayout is the local-time format written to save files.
const TimestampLayout = "2006-01-02T15:04:05"

const saveSuffix = ".save.json"

// Snapshot is the persisted form of a typing session. RawEntered holds
// the complete typed buffer as single-character strings so a resumed
// session evaluates correctness exactly as the interrupted one did; it
// may be absent in legacy save files.
type Snapshot struct {
	Filename    *string  `json:"filename"`
	Position    int      `json:"position"`
	ElapsedTime float64  `json:"elapsed_time"`
	Correct     int      `json:"correct"`
	Incorrect   int      `json:"incorrect"`
	Score       float64  `json:"score"`
	Streak      int      `json:"streak"`
	Multiplier  float64  `json:"multiplier"`
	Timestamp   string   `json:"timestamp"`
	WrapWidth   int      `json:"wrap_width"`
	RawEntered  []string `json:"raw_entered,omitempty"`
}

// Save writes the snapshot atomically: the JSON is written to a temporary
// file in the destination directory, forced to stable storage, then
// renamed over the destination. A failure at any step leaves a prior save
// file untouched.
func Save(path string, snap Snapshot) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "typingtxt-*.tmp_save")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace save: %w", err)
	}
	return nil
}

// Load reads and validates a snapshot. Malformed files are reported as
// errors; callers fall back to a fresh session.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read save: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode save: %w", err)
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, fmt.Errorf("invalid save file: %w", err)
	}
	return snap, nil
}

func (s Snapshot) validate() error {
	if s.Position < 0 {
		return fmt.Errorf("position %d is negative", s.Position)
	}
	if s.ElapsedTime < 0 {
		return fmt.Errorf("elapsed_time %f is negative", s.ElapsedTime)
	}
	if s.Streak < 0 {
		return fmt.Errorf("streak %d is negative", s.Streak)
	}
	if s.Multiplier < 0 {
		return fmt.Errorf("multiplier %f is negative", s.Multiplier)
	}
	for i, entry := range s.RawEntered {
		if utf8.RuneCountInString(entry) != 1 {
			return fmt.Errorf("raw_entered entry %d (%q) is not a single character", i, entry)
		}
	}
	return nil
}

// DefaultPathFor returns the save path paired with a practice text,
// alongside the text file itself.
func DefaultPathFor(textPath string) string {
	dir := filepath.Dir(textPath)
	return filepath.Join(dir, filepath.Base(textPath)+saveSuffix)
}

// EncodeRunes converts a typed buffer to the raw_entered wire form.
func EncodeRunes(runes []rune) []string {
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// DecodeRunes converts raw_entered entries back to a typed buffer.
func DecodeRunes(entries []string) []rune {
	out := make([]rune, 0, len(entries))
	for _, entry := range entries {
		r, _ := utf8.DecodeRuneInString(entry)
		out = append(out, r)
	}
	return out
}
