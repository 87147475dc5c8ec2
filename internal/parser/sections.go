package parser

import (
	"regexp"
	"strings"
)

const (
	maxExperienceEntries = 5
	maxEducationEntries  = 3
)

type sectionState int

const (
	stateBefore sectionState = iota
	stateIn
	stateDone
)

// sectionRules describes one resume section: the header that opens it and the
// headers of sections that close it. A matching header line is consumed.
type sectionRules struct {
	trigger *regexp.Regexp
	stop    *regexp.Regexp
}

// step advances the state machine for one line and reports whether the line
// was consumed as a header.
func (r sectionRules) step(state sectionState, line string) (sectionState, bool) {
	if state == stateDone {
		return stateDone, true
	}
	if r.trigger.MatchString(line) {
		return stateIn, true
	}
	if state == stateIn && r.stop.MatchString(line) {
		return stateDone, true
	}
	return state, false
}

var (
	experienceRules = sectionRules{
		trigger: regexp.MustCompile(`(?i)\b(experience|employment|work history)\b`),
		stop:    regexp.MustCompile(`(?i)\b(education|skills|certifications)\b`),
	}
	educationRules = sectionRules{
		trigger: regexp.MustCompile(`(?i)\beducation\b`),
		stop:    regexp.MustCompile(`(?i)\b(experience|skills|certifications|projects)\b`),
	}

	// A 4-digit year or a company suffix starts a new job entry.
	entryBoundaryPattern = regexp.MustCompile(`\b(\d{4}|\w+\s*(Inc|LLC|Corp|Company|Ltd))\b`)

	degreePatterns = []*regexp.Regexp{
		wordPattern("Bachelor", "Master", "PhD", "Ph.D", "MBA", "Associate", "Diploma"),
		wordPattern("B.S.", "B.A.", "M.S.", "M.A.", "B.E.", "B.Tech", "M.Tech"),
	}

	institutionKeywords = []string{"university", "college", "institute", "school", "academy"}
)

func isEntryBoundary(line string) bool {
	return entryBoundaryPattern.MatchString(line)
}

func isDegreeLine(line string) bool {
	for _, p := range degreePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// extractExperience splits the experience section into job entries. Lines
// before the first boundary line are ignored; following lines are joined onto
// the current entry.
func extractExperience(doc Document) []string {
	entries := make([]string, 0)
	var current []string
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Join(current, " "))
			current = nil
		}
	}

	state := stateBefore
	for _, line := range doc.nonBlankLines() {
		var header bool
		state, header = experienceRules.step(state, line)
		if state == stateDone {
			break
		}
		if header || state != stateIn {
			continue
		}
		if isEntryBoundary(line) {
			flush()
			current = append(current, line)
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	flush()

	if len(entries) > maxExperienceEntries {
		entries = entries[:maxExperienceEntries]
	}
	return entries
}

// extractEducation collects one entry per qualifying line. Degree lines
// qualify anywhere in the document; other lines only inside the education
// section and only when they name an institution.
func extractEducation(doc Document) []string {
	entries := make([]string, 0)
	state := stateBefore
	for _, line := range doc.nonBlankLines() {
		var header bool
		state, header = educationRules.step(state, line)
		if state == stateDone || len(entries) == maxEducationEntries {
			break
		}
		if header {
			continue
		}
		degree := isDegreeLine(line)
		if state != stateIn && !degree {
			continue
		}
		if degree || containsAny(strings.ToLower(line), institutionKeywords) {
			entries = append(entries, line)
		}
	}
	return entries
}
