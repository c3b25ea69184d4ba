package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	// Create temp file for testing
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")
	os.WriteFile(existingFile, []byte("test"), 0644)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "file exists",
			path:     existingFile,
			expected: true,
		},
		{
			name:     "file doesn't exist",
			path:     filepath.Join(tmpDir, "notfound.txt"),
			expected: false,
		},
		{
			name:     "path is directory",
			path:     tmpDir,
			expected: true, // FileExists returns true for both files and directories
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FileExists(tt.path)
			if result != tt.expected {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plain.txt")
	os.WriteFile(file, []byte("test"), 0644)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "directory exists",
			path:     tmpDir,
			expected: true,
		},
		{
			name:     "path is a plain file",
			path:     file,
			expected: false,
		},
		{
			name:     "path doesn't exist",
			path:     filepath.Join(tmpDir, "missing"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DirExists(tt.path)
			if result != tt.expected {
				t.Errorf("DirExists(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{
			name:     "bytes",
			size:     512,
			expected: "512 B",
		},
		{
			name:     "kibibytes",
			size:     2048,
			expected: "2.0 KiB",
		},
		{
			name:     "mebibytes",
			size:     5 * 1024 * 1024,
			expected: "5.0 MiB",
		},
		{
			name:     "zero",
			size:     0,
			expected: "0 B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HumanSize(tt.size)
			if result != tt.expected {
				t.Errorf("HumanSize(%d) = %q, want %q", tt.size, result, tt.expected)
			}
		})
	}
}
