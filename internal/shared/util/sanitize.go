package util

import (
	"errors"
	"regexp"
	"strings"
)

const maxFileNameLen = 200

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces name to a safe ASCII base name: separators become
// underscores, other characters outside [A-Za-z0-9_.-] are dropped, and
// leading dots are trimmed so the result is never hidden or relative.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
	s = unsafeFileChars.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "._")
	if len(s) > maxFileNameLen {
		s = s[len(s)-maxFileNameLen:]
	}
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
