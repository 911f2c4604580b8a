// Package texts manages the practice text folder and text loading.
package texts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the folder scanned for practice texts.
const DefaultDir = "text"

// EnsureDir creates the practice text folder if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create text folder: %w", err)
	}
	return nil
}

// Scan returns the sorted paths of .txt files in the folder. A missing
// folder yields an empty list, not an error.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read text folder: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Load reads a practice text file and normalizes its line endings.
// Empty files are an error so callers can fall back to other input.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	content := Normalize(string(data))
	if content == "" {
		return "", fmt.Errorf("text file %s is empty", path)
	}
	return content, nil
}

// Normalize converts CRLF and bare CR line endings to '\n'.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Sample returns the built-in fallback text used when no input is given.
func Sample() string {
	return "The quick brown fox jumps over the lazy dog.\n" +
		"This is a sample text for the terminal typing game.\n" +
		"Feel free to paste any long passage you like (novel chapters, code, poems...)."
}
