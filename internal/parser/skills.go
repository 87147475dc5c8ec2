package parser

import (
	"regexp"
	"strings"
)

type skillMatcher struct {
	skill   string
	pattern *regexp.Regexp
}

// wordChar is any Unicode letter, digit or underscore. Go's \b only knows
// ASCII, which would split "Résumé" around the "é".
const wordChar = `\p{L}\p{N}_`

// wordPattern builds a case-insensitive pattern matching any of the literal
// alternatives when not directly touching another word character. Unlike \b
// this also holds for terms ending in punctuation such as "C++" or "B.S.".
func wordPattern(alternatives ...string) *regexp.Regexp {
	quoted := make([]string, len(alternatives))
	for i, a := range alternatives {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(a))
	}
	return regexp.MustCompile(`(?i)(?:^|[^` + wordChar + `])(?:` + strings.Join(quoted, "|") + `)(?:[^` + wordChar + `]|$)`)
}

func compileSkills(skills []string) []skillMatcher {
	out := make([]skillMatcher, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillMatcher{skill: s, pattern: wordPattern(s)})
	}
	return out
}

// extractSkills returns the canonical skills present in the text, in taxonomy
// order, each at most once.
func extractSkills(doc Document, matchers []skillMatcher) []string {
	found := make([]string, 0)
	seen := make(map[string]struct{})
	for _, m := range matchers {
		if _, dup := seen[m.skill]; dup {
			continue
		}
		if m.pattern.MatchString(doc.Lower) {
			seen[m.skill] = struct{}{}
			found = append(found, m.skill)
		}
	}
	return found
}
