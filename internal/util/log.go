package util

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset    = "\033[0m"
	Bold     = "\033[1m"
	Dim      = "\033[2m"
	Red      = "\033[31m"
	Green    = "\033[32m"
	Yellow   = "\033[33m"
	Cyan     = "\033[36m"
	BoldRed  = "\033[1;31m"
	BoldCyan = "\033[1;36m"
)

// colorEnabled returns true if stderr is a TTY and NO_COLOR is not set.
var colorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
})

// stdoutColorEnabled returns true if stdout is a TTY and NO_COLOR is not set.
var stdoutColorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
})

// colorize wraps msg in ANSI color codes if color is enabled for stderr.
func colorize(c, msg string) string {
	if !colorEnabled() {
		return msg
	}
	return c + msg + Reset
}

// colorizeStdout wraps msg in ANSI color codes if color is enabled for stdout.
func colorizeStdout(c, msg string) string {
	if !stdoutColorEnabled() {
		return msg
	}
	return c + msg + Reset
}

// Log prints an informational message to stderr with a cyan bold "==>" prefix.
func Log(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(BoldCyan, "==>"), formatted)
}

// Success prints a success message to stderr with a green "==>" prefix.
func Success(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(Green, "==>"), colorize(Green, formatted))
}

// Section prints a bold section header to stdout (e.g., "==> 3 log file(s)").
func Section(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Println(colorizeStdout(Bold, "==> "+formatted))
}

// Die prints an error message to stderr and exits with status 1.
func Die(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(BoldRed, "ERROR:"), colorize(BoldRed, formatted))
	os.Exit(1)
}

// Warn prints a warning message to stderr.
func Warn(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(Yellow, "WARN:"), colorize(Yellow, formatted))
}

// FileRow represents a single file entry in a listing table.
type FileRow struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileTable prints file rows as an aligned table with human-readable
// sizes and modification times, newest last.
func FileTable(rows []FileRow) {
	if len(rows) == 0 {
		return
	}

	// Compute column widths (using raw text length, not ANSI-colored length)
	nameW, sizeW := 0, 0
	sizes := make([]string, len(rows))
	for i, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		sizes[i] = HumanSize(r.Size)
		if len(sizes[i]) > sizeW {
			sizeW = len(sizes[i])
		}
	}

	for i, r := range rows {
		modTime := colorizeStdout(Dim, r.ModTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("  %-*s  %*s  %s\n", nameW, r.Name, sizeW, sizes[i], modTime)
	}
}

// HumanSize formats a byte count with a binary unit suffix.
func HumanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
