// Package parser turns decoded resume text into a structured extraction
// record: contact details, skills, experience and education entries, and a
// keyword frequency table.
package parser

import (
	"fmt"
	"runtime/debug"
	"strings"

	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/taxonomy"
)

const rawTextLimit = 1000

// Record is the result of parsing one document.
type Record struct {
	Contact    ContactInfo    `json:"contactInfo"`
	Skills     []string       `json:"skills"`
	Experience []string       `json:"experience"`
	Education  []string       `json:"education"`
	Keywords   []KeywordCount `json:"keywords"`
	RawText    string         `json:"rawText"`
}

// ExperienceText joins the experience entries into the blob used for field
// matching.
func (r Record) ExperienceText() string {
	return strings.Join(r.Experience, " ")
}

// KeywordWords returns the detected keyword words.
func (r Record) KeywordWords() []string {
	out := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		out = append(out, k.Word)
	}
	return out
}

// Parser extracts Records. It holds only read-only state and is safe for
// concurrent use.
type Parser struct {
	skills     []skillMatcher
	vocab      keywordVocabulary
	categories []taxonomy.SkillCategory
}

// New builds a Parser over the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Parser {
	skills := tax.Skills()
	return &Parser{
		skills: compileSkills(skills),
		vocab: keywordVocabulary{
			isRoleKeyword: tax.IsRoleKeyword,
			skillWords:    skillWordSet(skills),
		},
		categories: tax.Categories(),
	}
}

// Parse extracts a Record from text. Blank text fails with ErrEmptyDocument.
// Each extractor runs in isolation: a failure in one leaves its part of the
// record empty and is logged.
func (p *Parser) Parse(text string) (Record, error) {
	doc, err := Normalize(text)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Keywords:   []KeywordCount{},
		RawText:    truncateRunes(doc.Original, rawTextLimit),
	}

	isolate("contact", func() { rec.Contact = extractContact(doc) })
	isolate("skills", func() { rec.Skills = extractSkills(doc, p.skills) })
	isolate("experience", func() { rec.Experience = extractExperience(doc) })
	isolate("education", func() { rec.Education = extractEducation(doc) })
	isolate("keywords", func() { rec.Keywords = extractKeywords(doc, p.vocab) })

	return rec, nil
}

// SkillCategories returns the taxonomy's skill groupings.
func (p *Parser) SkillCategories() []taxonomy.SkillCategory {
	return p.categories
}

func isolate(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("parser.extractor_failed", map[string]any{
				"extractor": name,
				"error":     fmt.Sprint(rec),
				"stack":     string(debug.Stack()),
			})
		}
	}()
	fn()
}
