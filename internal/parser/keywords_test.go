package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultVocabulary(t *testing.T) keywordVocabulary {
	t.Helper()
	tax := defaultTaxonomy(t)
	return keywordVocabulary{isRoleKeyword: tax.IsRoleKeyword, skillWords: skillWordSet(tax.Skills())}
}

func TestExtractKeywordsCountsAndTieOrder(t *testing.T) {
	doc := mustDoc(t, "Developer python developer lead engineer python developer")
	got := extractKeywords(doc, defaultVocabulary(t))
	assert.Equal(t, []KeywordCount{
		{Word: "Developer", Count: 3},
		{Word: "Python", Count: 2},
		{Word: "Lead", Count: 1},
		{Word: "Engineer", Count: 1},
	}, got)
}

func TestExtractKeywordsSingleLetterSkills(t *testing.T) {
	doc := mustDoc(t, "I go to R meetings")
	got := extractKeywords(doc, defaultVocabulary(t))
	assert.Equal(t, []KeywordCount{{Word: "Go", Count: 1}, {Word: "R", Count: 1}}, got)
}

func TestExtractKeywordsIgnoresShortRoleWordsAndMixedTokens(t *testing.T) {
	vocab := keywordVocabulary{
		isRoleKeyword: func(w string) bool { return w == "ops" || w == "team" },
		skillWords:    map[string]struct{}{},
	}
	got := extractKeywords(mustDoc(t, "ops team team2 team"), vocab)
	assert.Equal(t, []KeywordCount{{Word: "Team", Count: 2}}, got)
}

func TestExtractKeywordsCapsAtTwenty(t *testing.T) {
	doc := mustDoc(t, "python java ruby rust swift kotlin scala perl dart lua bash shell go r c php sales training creativity presentation negotiation marketing")
	got := extractKeywords(doc, defaultVocabulary(t))
	assert.Len(t, got, 20)
	assert.Equal(t, "Python", got[0].Word)
	assert.Equal(t, "Presentation", got[19].Word)
}

func TestExtractKeywordsEmpty(t *testing.T) {
	got := extractKeywords(mustDoc(t, "nothing relevant"), defaultVocabulary(t))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractKeywordsKeepsAccentedWordsWhole(t *testing.T) {
	got := extractKeywords(mustDoc(t, "Résumé\nnaïve café owner"), defaultVocabulary(t))
	assert.Empty(t, got)

	got = extractKeywords(mustDoc(t, "Résumé of an R developer"), defaultVocabulary(t))
	assert.Equal(t, []KeywordCount{{Word: "R", Count: 1}, {Word: "Developer", Count: 1}}, got)
}
