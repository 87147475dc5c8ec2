package parser

import (
	"errors"
	"strings"
)

// ErrEmptyDocument is returned when the document text is blank after trimming.
var ErrEmptyDocument = errors.New("empty document")

// Document is decoded resume text prepared for the extractors.
type Document struct {
	// Original keeps the source casing; name detection depends on it.
	Original string
	Lower    string
	Lines    []string
}

// Normalize prepares text for extraction. It fails with ErrEmptyDocument when
// the text has nothing but whitespace.
func Normalize(text string) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyDocument
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return Document{
		Original: text,
		Lower:    strings.ToLower(text),
		Lines:    strings.Split(text, "\n"),
	}, nil
}

// nonBlankLines returns the trimmed, non-empty lines in document order.
func (d Document) nonBlankLines() []string {
	out := make([]string, 0, len(d.Lines))
	for _, line := range d.Lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
