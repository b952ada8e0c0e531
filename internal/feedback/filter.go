package feedback

import (
	"strings"

	"golang.org/x/text/cases"
)

// ExperienceAll is the experience filter value that matches every rating.
const ExperienceAll = "All"

// ExperienceFilters lists the filter badges in display order.
func ExperienceFilters() []string {
	out := []string{ExperienceAll}
	for _, exp := range Experiences() {
		out = append(out, string(exp))
	}
	return out
}

// NormalizeExperienceFilter maps unknown or empty filter values to All.
func NormalizeExperienceFilter(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := ParseExperience(value); ok {
		return value
	}
	return ExperienceAll
}

// Filter returns the records matching term and experience, in input order.
//
// A record matches when experience is All (or empty) or equals the record's
// rating, and the case-folded term is a substring of the attendee name,
// expectations, key takeaways or improvements. The input is never modified.
func Filter(records []Record, term string, experience string) []Record {
	folder := cases.Fold()
	needle := folder.String(term)
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if !matchesExperience(record, experience) {
			continue
		}
		if !matchesTerm(folder, record, needle) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesExperience(record Record, experience string) bool {
	if experience == "" || experience == ExperienceAll {
		return true
	}
	return string(record.Experience) == experience
}

func matchesTerm(folder cases.Caser, record Record, needle string) bool {
	if needle == "" {
		return true
	}
	for _, haystack := range []string{record.Attendee.Name, record.Expectations, record.KeyTakeaways, record.Improvements} {
		if strings.Contains(folder.String(haystack), needle) {
			return true
		}
	}
	return false
}
