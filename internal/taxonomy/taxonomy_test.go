package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomyShape(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	fields := tax.JobFields()
	require.Len(t, fields, 10)
	assert.Equal(t, "Software Engineer", fields[0].Name)
	assert.Equal(t, "QA Engineer", fields[len(fields)-1].Name)
	assert.Len(t, fields[0].RequiredSkills, 22)
	assert.Len(t, fields[0].Keywords, 11)
	for _, f := range fields {
		assert.Equal(t, 1.0, f.Weight, f.Name)
	}

	assert.Len(t, tax.Categories(), 7)
	assert.Contains(t, tax.Skills(), "C++")
	assert.Contains(t, tax.Skills(), "Ruby on Rails")
}

func TestSkillsAreDeduplicatedAcrossCategories(t *testing.T) {
	tax := defaultTaxonomy(t)
	count := 0
	for _, s := range tax.Skills() {
		if s == "Firebase" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRoleKeywords(t *testing.T) {
	tax := defaultTaxonomy(t)
	assert.True(t, tax.IsRoleKeyword("developer"))
	assert.True(t, tax.IsRoleKeyword("lead"))
	assert.False(t, tax.IsRoleKeyword("Developer"))
	assert.Len(t, tax.RoleKeywords(), 26)
}

func TestAccessorsReturnCopies(t *testing.T) {
	tax := defaultTaxonomy(t)
	fields := tax.JobFields()
	fields[0].Name = "mutated"
	fields[0].RequiredSkills[0] = "mutated"

	again := tax.JobFields()
	assert.Equal(t, "Software Engineer", again[0].Name)
	assert.Equal(t, "Python", again[0].RequiredSkills[0])
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"no fields":  "role_keywords: [lead]\n",
		"no name":    "job_fields:\n  - skills: [Go]\n",
		"duplicates": "job_fields:\n  - name: QA\n  - name: qa\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidTaxonomy)
		})
	}
}

func TestParseDefaultsWeight(t *testing.T) {
	tax, err := Parse([]byte("job_fields:\n  - name: Tester\n    skills: [Go]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, tax.JobFields()[0].Weight)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	doc := "skill_categories:\n  - name: langs\n    skills: [Go]\njob_fields:\n  - name: Gopher\n    skills: [Go]\n    keywords: [concurrency]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, tax.Skills())
	assert.Equal(t, "Gopher", tax.JobFields()[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Same(t, defaultTaxonomy(t), def)
}

func defaultTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()
	tax, err := Default()
	require.NoError(t, err)
	return tax
}
