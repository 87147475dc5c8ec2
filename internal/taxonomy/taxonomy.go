// Package taxonomy holds the fixed skill vocabulary, role keywords and job
// field definitions used by the parser and the field matcher.
//
// A Taxonomy is built once at process start and never mutated afterwards, so
// it can be shared by concurrent requests without locking.
package taxonomy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultDocument []byte

// ErrInvalidTaxonomy is returned when a taxonomy document fails validation.
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// SkillCategory groups canonical skills. Categories are informational only.
type SkillCategory struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// JobField describes one recommendable job field.
type JobField struct {
	Name           string   `yaml:"name" json:"name"`
	RequiredSkills []string `yaml:"skills" json:"requiredSkills"`
	Keywords       []string `yaml:"keywords" json:"keywords"`
	Weight         float64  `yaml:"weight" json:"weight"`
}

type document struct {
	SkillCategories []SkillCategory `yaml:"skill_categories"`
	RoleKeywords    []string        `yaml:"role_keywords"`
	JobFields       []JobField      `yaml:"job_fields"`
}

// Taxonomy is the immutable knowledge base. Use the accessor methods; the
// returned slices are copies.
type Taxonomy struct {
	categories   []SkillCategory
	skills       []string
	skillByLower map[string]string
	roleKeywords map[string]struct{}
	roleOrder    []string
	fields       []JobField
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Default returns the embedded taxonomy. The document is decoded once.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Parse(defaultDocument)
	})
	return defaultTax, defaultErr
}

// Load returns the taxonomy at path, or the embedded default when path is empty.
func Load(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML taxonomy document.
func Parse(raw []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Taxonomy, error) {
	if len(doc.JobFields) == 0 {
		return nil, fmt.Errorf("%w: no job fields", ErrInvalidTaxonomy)
	}

	t := &Taxonomy{
		skillByLower: make(map[string]string),
		roleKeywords: make(map[string]struct{}, len(doc.RoleKeywords)),
	}

	for _, cat := range doc.SkillCategories {
		cleaned := SkillCategory{Name: strings.TrimSpace(cat.Name)}
		for _, skill := range cat.Skills {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			cleaned.Skills = append(cleaned.Skills, skill)
			// Firebase is listed under two categories; it is one canonical skill.
			lower := strings.ToLower(skill)
			if _, seen := t.skillByLower[lower]; seen {
				continue
			}
			t.skillByLower[lower] = skill
			t.skills = append(t.skills, skill)
		}
		t.categories = append(t.categories, cleaned)
	}

	for _, kw := range doc.RoleKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, seen := t.roleKeywords[kw]; seen {
			continue
		}
		t.roleKeywords[kw] = struct{}{}
		t.roleOrder = append(t.roleOrder, kw)
	}

	names := make(map[string]struct{}, len(doc.JobFields))
	for i, f := range doc.JobFields {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			return nil, fmt.Errorf("%w: job field %d has no name", ErrInvalidTaxonomy, i)
		}
		key := strings.ToLower(f.Name)
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("%w: duplicate job field %q", ErrInvalidTaxonomy, f.Name)
		}
		names[key] = struct{}{}
		if f.Weight == 0 {
			f.Weight = 1.0
		}
		f.RequiredSkills = trimAll(f.RequiredSkills)
		f.Keywords = trimAll(f.Keywords)
		t.fields = append(t.fields, f)
	}

	return t, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Skills returns every canonical skill in taxonomy order, without repeats.
func (t *Taxonomy) Skills() []string {
	return append([]string(nil), t.skills...)
}

// Categories returns the skill categories in document order.
func (t *Taxonomy) Categories() []SkillCategory {
	out := make([]SkillCategory, len(t.categories))
	for i, c := range t.categories {
		out[i] = SkillCategory{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// IsRoleKeyword reports whether the lowercase word is in the role vocabulary.
func (t *Taxonomy) IsRoleKeyword(word string) bool {
	_, ok := t.roleKeywords[word]
	return ok
}

// RoleKeywords returns the role vocabulary in document order.
func (t *Taxonomy) RoleKeywords() []string {
	return append([]string(nil), t.roleOrder...)
}

// JobFields returns the job field definitions in taxonomy order.
func (t *Taxonomy) JobFields() []JobField {
	out := make([]JobField, len(t.fields))
	for i, f := range t.fields {
		out[i] = JobField{
			Name:           f.Name,
			RequiredSkills: append([]string(nil), f.RequiredSkills...),
			Keywords:       append([]string(nil), f.Keywords...),
			Weight:         f.Weight,
		}
	}
	return out
}
