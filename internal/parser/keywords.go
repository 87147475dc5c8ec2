package parser

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxKeywords       = 20
	minRoleKeywordLen = 4
)

var (
	// Tokens are whole runs of word characters; only purely a-z runs count,
	// so "naïve" is one token that never matches rather than "na" and "ve".
	tokenPattern = regexp.MustCompile(`[` + wordChar + `]+`)
	asciiWord    = regexp.MustCompile(`^[a-z]+$`)
)

// KeywordCount is one entry of the keyword frequency table.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type keywordVocabulary struct {
	isRoleKeyword func(string) bool
	skillWords    map[string]struct{}
}

func (v keywordVocabulary) relevant(word string) bool {
	if len(word) >= minRoleKeywordLen && v.isRoleKeyword(word) {
		return true
	}
	_, ok := v.skillWords[word]
	return ok
}

// extractKeywords counts relevant tokens and returns the most frequent ones.
// Ties keep the order in which the words first appeared.
func extractKeywords(doc Document, vocab keywordVocabulary) []KeywordCount {
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokenPattern.FindAllString(doc.Lower, -1) {
		if !asciiWord.MatchString(tok) || !vocab.relevant(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	// A Caser keeps state, so each call gets its own.
	title := cases.Title(language.English)
	out := make([]KeywordCount, 0, len(order))
	for _, word := range order {
		out = append(out, KeywordCount{Word: title.String(word), Count: counts[word]})
	}
	return out
}

func skillWordSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
