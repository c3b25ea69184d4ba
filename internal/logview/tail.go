package logview

import (
	"bytes"
	"fmt"
	"os"
)

// tailBlockSize is the chunk size for backward reads.
const tailBlockSize = 8192

// TailLines returns the last n lines of the file at path, in original
// order. The file is read backwards in blocks so large logs are never
// loaded whole. A final line without a trailing newline counts.
func TailLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	buf, err := tailBytes(f, st.Size(), n)
	if err != nil {
		return nil, err
	}
	return lastLines(buf, n), nil
}

// TailMerged returns the last n lines of the byte-wise concatenation of
// the given files, in order. It is a single merged view: n lines total,
// not n lines per file. Files that vanish mid-read (rotation) are
// skipped best-effort.
func TailMerged(paths []string, n int) ([]string, error) {
	if n <= 0 || len(paths) == 0 {
		return nil, nil
	}

	// Walk files newest-last backwards, accumulating raw bytes until
	// enough newlines are buffered to satisfy n lines of the merged
	// stream.
	var buf []byte
	for i := len(paths) - 1; i >= 0; i-- {
		data, err := os.ReadFile(paths[i])
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", paths[i], err)
		}
		buf = append(data, buf...)
		if bytes.Count(buf, []byte{'\n'}) > n {
			break
		}
	}
	return lastLines(buf, n), nil
}

// tailBytes reads backwards from the end of f until the buffer holds
// more than n newlines or the whole file is buffered.
func tailBytes(f *os.File, size int64, n int) ([]byte, error) {
	var buf []byte
	off := size
	for off > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		readSize := int64(tailBlockSize)
		if off < readSize {
			readSize = off
		}
		off -= readSize

		chunk := make([]byte, readSize)
		if _, err := f.ReadAt(chunk, off); err != nil {
			return nil, err
		}
		buf = append(chunk, buf...)
	}
	return buf, nil
}

// lastLines splits buf into lines and returns at most the final n.
func lastLines(buf []byte, n int) []string {
	if len(buf) == 0 {
		return nil
	}

	lines := bytes.Split(buf, []byte{'\n'})
	// A trailing newline yields an empty final element; drop it.
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}
