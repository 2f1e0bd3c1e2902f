package platform

import (
	"os"
	"runtime"
	"strings"
)

// IsRegularFile reports whether path exists and, after following symlinks,
// is a regular file. Any stat error counts as "not a file".
func IsRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// LookupCommand returns the program and arguments that ask the operating
// system to resolve an executable by name.
func LookupCommand(name string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "where", []string{name}
	}
	return "which", []string{name}
}

// FirstLine trims surrounding whitespace and returns the first remaining
// line. where.exe prints every match, one per line.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
