package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExperienceScenario(t *testing.T) {
	doc := mustDoc(t, "Work History\nSoftware Engineer at Acme Inc 2019-2021\nBuilt backend services\nEducation\nBS Computer Science")
	assert.Equal(t, []string{"Software Engineer at Acme Inc 2019-2021 Built backend services"}, extractExperience(doc))
}

func TestExtractExperienceWithoutHeaderIsEmpty(t *testing.T) {
	doc := mustDoc(t, "Acme Inc 2019-2021\nBuilt things")
	got := extractExperience(doc)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractExperienceSkipsLinesBeforeFirstBoundary(t *testing.T) {
	doc := mustDoc(t, "Employment\nvarious short gigs\nGlobex LLC\nbuilt a widget\nInitech Ltd\n")
	assert.Equal(t, []string{"Globex LLC built a widget", "Initech Ltd"}, extractExperience(doc))
}

func TestExtractExperienceStopsForGood(t *testing.T) {
	doc := mustDoc(t, "Experience\nAcme Corp 2020\nSkills\nGo\nEmployment\nGlobex Inc 2018")
	assert.Equal(t, []string{"Acme Corp 2020"}, extractExperience(doc))
}

func TestExtractExperienceSplitsOnUnrelatedNumbers(t *testing.T) {
	// A metric with four digits starts a new entry.
	doc := mustDoc(t, "Experience\nAcme Inc 2019\nScaled to 5000 users\nOwned billing")
	assert.Equal(t, []string{"Acme Inc 2019", "Scaled to 5000 users Owned billing"}, extractExperience(doc))
}

func TestExtractExperienceCapsEntries(t *testing.T) {
	doc := mustDoc(t, "Experience\nA 2010\nB 2011\nC 2012\nD 2013\nE 2014\nF 2015\nG 2016")
	assert.Equal(t, []string{"A 2010", "B 2011", "C 2012", "D 2013", "E 2014"}, extractExperience(doc))
}

func TestSectionRulesStep(t *testing.T) {
	state, header := experienceRules.step(stateBefore, "Professional Experience")
	assert.Equal(t, stateIn, state)
	assert.True(t, header)

	state, header = experienceRules.step(stateBefore, "Skills")
	assert.Equal(t, stateBefore, state)
	assert.False(t, header)

	state, header = experienceRules.step(stateIn, "Technical Skills")
	assert.Equal(t, stateDone, state)
	assert.True(t, header)

	state, _ = experienceRules.step(stateDone, "Experience")
	assert.Equal(t, stateDone, state)

	state, header = experienceRules.step(stateIn, "Acme Inc 2019")
	assert.Equal(t, stateIn, state)
	assert.False(t, header)
}

func TestIsEntryBoundary(t *testing.T) {
	assert.True(t, isEntryBoundary("Jan 2020 - Present"))
	assert.True(t, isEntryBoundary("Globex Corp"))
	assert.True(t, isEntryBoundary("Initech Company"))
	assert.False(t, isEntryBoundary("wrote 12345 lines"))
	assert.False(t, isEntryBoundary("Built APIs"))
}

func TestExtractEducation(t *testing.T) {
	doc := mustDoc(t, "Education\nState University\nDean's list\nProjects\nPhD thesis work")
	assert.Equal(t, []string{"State University"}, extractEducation(doc))
}

func TestExtractEducationDegreeOutsideSection(t *testing.T) {
	doc := mustDoc(t, "Summary\nHolds an MBA and a love of spreadsheets\nExperience\nAcme Inc 2019")
	assert.Equal(t, []string{"Holds an MBA and a love of spreadsheets"}, extractEducation(doc))
}

func TestExtractEducationAbbreviatedDegrees(t *testing.T) {
	doc := mustDoc(t, "B.Tech Mechanical\nM.S. Data Science\nb.a. history")
	assert.Equal(t, []string{"B.Tech Mechanical", "M.S. Data Science", "b.a. history"}, extractEducation(doc))
}

func TestExtractEducationCapsEntries(t *testing.T) {
	doc := mustDoc(t, "Education\nA University\nB College\nC Institute\nD Academy")
	assert.Equal(t, []string{"A University", "B College", "C Institute"}, extractEducation(doc))
}

func TestExtractEducationWithoutMatchesIsEmpty(t *testing.T) {
	got := extractEducation(mustDoc(t, "Experience\nAcme Inc 2019"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
