package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContactInfo holds the contact details found in a resume. Fields are empty
// when nothing was detected.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// matcher returns the first match of one pattern, if any.
type matcher func(text string) (string, bool)

func regexMatcher(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		loc := re.FindStringIndex(text)
		if loc == nil {
			return "", false
		}
		return text[loc[0]:loc[1]], true
	}
}

// firstMatch tries matchers in order and returns the first success.
func firstMatch(text string, matchers ...matcher) (string, bool) {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v, true
		}
	}
	return "", false
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	digitRunPattern = regexp.MustCompile(`\d{3}`)

	emailMatchers    = []matcher{regexMatcher(emailPattern)}
	linkedinMatchers = []matcher{regexMatcher(linkedinPattern)}

	// Grouped form with optional country code first, bare 3-3-4 digits second.
	phoneMatchers = []matcher{
		regexMatcher(regexp.MustCompile(`(\+?1?[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)),
		regexMatcher(regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)),
	}

	nameHeaderWords = []string{"objective", "summary", "experience", "education"}
)

const (
	nameScanLines = 5
	nameMaxTokens = 4
	nameMaxLen    = 50
)

func extractContact(doc Document) ContactInfo {
	var info ContactInfo
	if v, ok := firstMatch(doc.Original, emailMatchers...); ok {
		info.Email = v
	}
	if v, ok := firstMatch(doc.Original, phoneMatchers...); ok {
		// The country-code group may capture the separator before the number.
		info.Phone = strings.TrimLeft(v, " \t\r\n-.")
	}
	if v, ok := firstMatch(doc.Original, linkedinMatchers...); ok {
		info.LinkedIn = v
	}
	info.Name = detectName(doc.nonBlankLines())
	return info
}

func detectName(lines []string) string {
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, nameHeaderWords) {
			continue
		}
		if strings.Contains(line, "@") || digitRunPattern.MatchString(line) {
			continue
		}
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if len(strings.Fields(line)) > nameMaxTokens {
		return false
	}
	if utf8.RuneCountInString(line) >= nameMaxLen {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	return unicode.IsUpper(first)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
