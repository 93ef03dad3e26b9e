package prereq

import (
	"regexp"
	"strings"
)

// A blind scan over a whole description would turn any course code mentioned
// in passing ("see also CS 1400") into a prerequisite edge. Extraction is
// staged instead: explicit prerequisite sections first, contextual cue
// patterns only as a fallback, never a raw scan.

var (
	courseCodePattern = regexp.MustCompile(`(?i)\b([A-Z]{2,4})\s+(\d{4}[A-Z]?)\b`)
	strictCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\s\d{4}[A-Z]?$`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	sectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)Prerequisites?:([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?is)Prereq:([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?is)Required:([^.]*?)(?:\.|$)`),
	}

	contextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([A-Z]{2,4}\s+\d{4}[A-Z]?)\s+\(Grade [A-Z] or higher\)`),
		regexp.MustCompile(`(?i)([A-Z]{2,4}\s+\d{4}[A-Z]?)\s+or higher`),
		regexp.MustCompile(`(?i)completion of\s+([A-Z]{2,4}\s+\d{4}[A-Z]?)`),
	}
)

// ExtractPrerequisites returns the ordered, deduplicated prerequisite course
// codes referenced by a course description. Malformed candidates are dropped
// silently.
func ExtractPrerequisites(description string) []string {
	var candidates []string

	// Explicit prerequisite sections are the primary source.
	for _, pattern := range sectionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(description, -1) {
			for _, code := range codesIn(match[1]) {
				candidates = appendUnique(candidates, code)
			}
		}
	}

	// Contextual cues recover implicit prerequisites, but only when no
	// explicit section was found and the description mentions codes at all.
	if len(candidates) == 0 && courseCodePattern.MatchString(description) {
		for _, pattern := range contextPatterns {
			for _, match := range pattern.FindAllStringSubmatch(description, -1) {
				candidates = appendUnique(candidates, normalize(match[1]))
			}
		}
	}

	cleaned := make([]string, 0, len(candidates))
	for _, code := range candidates {
		if strictCodePattern.MatchString(code) {
			cleaned = append(cleaned, code)
		}
	}
	return cleaned
}

func codesIn(section string) []string {
	var codes []string
	for _, match := range courseCodePattern.FindAllStringSubmatch(section, -1) {
		codes = append(codes, strings.ToUpper(match[1])+" "+strings.ToUpper(match[2]))
	}
	return codes
}

func normalize(code string) string {
	return whitespacePattern.ReplaceAllString(strings.ToUpper(strings.TrimSpace(code)), " ")
}

func appendUnique(codes []string, code string) []string {
	for _, existing := range codes {
		if existing == code {
			return codes
		}
	}
	return append(codes, code)
}
