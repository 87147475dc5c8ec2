// Package match scores a candidate's skills and keywords against the job
// fields of a taxonomy and ranks the fields.
package match

import (
	"math"
	"sort"
	"strings"

	"resume-parser/internal/taxonomy"
)

const (
	skillShare      = 60.0
	keywordShare    = 40.0
	experienceBonus = 10.0
	maxScore        = 100.0
)

// SearchURLs are job-board searches for one field.
type SearchURLs struct {
	LinkedIn  string `json:"linkedin"`
	Indeed    string `json:"indeed"`
	Glassdoor string `json:"glassdoor"`
}

// FieldMatch is the score of one job field.
type FieldMatch struct {
	Field           string     `json:"field"`
	MatchPercentage int        `json:"matchPercentage"`
	SearchURLs      SearchURLs `json:"jobSearchUrls"`
}

// Matcher ranks job fields. It only reads the taxonomy and is safe for
// concurrent use.
type Matcher struct {
	fields []taxonomy.JobField
}

// New returns a Matcher over the taxonomy's job fields.
func New(tax *taxonomy.Taxonomy) *Matcher {
	return &Matcher{fields: tax.JobFields()}
}

// Fields returns the job field definitions in taxonomy order.
func (m *Matcher) Fields() []taxonomy.JobField {
	return append([]taxonomy.JobField(nil), m.fields...)
}

// Recommend scores every job field and returns them best first. Fields with
// equal scores keep taxonomy order. A non-empty experienceText that mentions a
// field's name earns that field a bonus.
func (m *Matcher) Recommend(skills, keywords []string, experienceText string) []FieldMatch {
	skillSet := lowerSet(skills)
	keywordSet := lowerSet(keywords)
	experience := strings.ToLower(experienceText)

	out := make([]FieldMatch, 0, len(m.fields))
	for _, f := range m.fields {
		score := Score(f, skillSet, keywordSet)
		if experience != "" && strings.Contains(experience, strings.ToLower(f.Name)) {
			score += experienceBonus
		}
		out = append(out, FieldMatch{
			Field:           f.Name,
			MatchPercentage: int(math.RoundToEven(math.Min(score, maxScore))),
			SearchURLs:      SearchURLsFor(f.Name),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}

// Score returns the unrounded percentage match of one field, before any
// experience bonus. skills and keywords must be lowercase sets.
func Score(f taxonomy.JobField, skills, keywords map[string]struct{}) float64 {
	var num, den float64
	if n := len(f.RequiredSkills); n > 0 {
		share := skillShare / float64(n)
		for _, s := range f.RequiredSkills {
			den += share
			if _, ok := skills[strings.ToLower(s)]; ok {
				num += share
			}
		}
	}
	if n := len(f.Keywords); n > 0 {
		share := keywordShare / float64(n)
		for _, k := range f.Keywords {
			den += share
			if _, ok := keywords[strings.ToLower(k)]; ok {
				num += share
			}
		}
	}
	if den == 0 {
		return 0
	}
	return 100 * num / den
}

// SearchURLsFor builds job-board search links for a field name.
func SearchURLsFor(field string) SearchURLs {
	q := strings.ReplaceAll(field, " ", "+")
	return SearchURLs{
		LinkedIn:  "https://www.linkedin.com/jobs/search/?keywords=" + q,
		Indeed:    "https://www.indeed.com/jobs?q=" + q,
		Glassdoor: "https://www.glassdoor.com/Job/jobs.htm?sc.keyword=" + q,
	}
}

func lowerSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return out
}
