// Package logview discovers and reads the log files produced by the
// bridge's logging engine. The engine owns the directory layout and
// rotation policy; this package only observes what it left on disk.
package logview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrLogDirMissing indicates the log directory itself is absent.
	ErrLogDirMissing = errors.New("log directory does not exist")

	// ErrNoLogFiles indicates the directory exists but holds no files
	// matching the rotation prefix. Reported distinctly from a missing
	// directory.
	ErrNoLogFiles = errors.New("no log files found")
)

// FileInfo describes one discovered log file.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Locator resolves the set of rotated log files in a directory. The
// bridge's rolling appender names them <prefix> followed by a date
// suffix, so discovery is a prefix match, newest decided by
// modification time.
type Locator struct {
	dir    string
	prefix string
}

// NewLocator creates a locator for dir and the given file name prefix.
func NewLocator(dir, prefix string) *Locator {
	return &Locator{dir: dir, prefix: prefix}
}

// Rotated lists the matching log files sorted oldest to newest by
// modification time.
func (l *Locator) Rotated() ([]FileInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrLogDirMissing, l.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory %s: %w", l.dir, err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), l.prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// File vanished between ReadDir and stat (rotation); skip.
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(l.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s/%s*", ErrNoLogFiles, l.dir, l.prefix)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// Latest returns the most recently modified matching file.
func (l *Locator) Latest() (FileInfo, error) {
	files, err := l.Rotated()
	if err != nil {
		return FileInfo{}, err
	}
	return files[len(files)-1], nil
}
