package prereq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrerequisitesFromSection(t *testing.T) {
	description := "Covers data structures. Prerequisites: CS 1400 and MATH 1050. Offered every semester."

	prereqs := ExtractPrerequisites(description)

	assert.Equal(t, []string{"CS 1400", "MATH 1050"}, prereqs)
}

func TestExtractPrerequisitesNormalizesCase(t *testing.T) {
	prereqs := ExtractPrerequisites("Prerequisite: cs 1400.")

	assert.Equal(t, []string{"CS 1400"}, prereqs)
}

// A course code mentioned in passing must not become a prerequisite edge.
func TestExtractPrerequisitesIgnoresPassingMentions(t *testing.T) {
	prereqs := ExtractPrerequisites("Survey of computing topics. See also CS 1400 for background material.")

	assert.Empty(t, prereqs)
}

func TestExtractPrerequisitesContextFallback(t *testing.T) {
	description := "Advanced composition. Completion of ENGL 1010 is expected, or ENGL 1010D or higher."

	prereqs := ExtractPrerequisites(description)

	assert.Equal(t, []string{"ENGL 1010D", "ENGL 1010"}, prereqs)
}

func TestExtractPrerequisitesSectionSuppressesFallback(t *testing.T) {
	// When an explicit section exists, contextual cues elsewhere are ignored.
	description := "Prerequisites: CS 2420. Builds on completion of MATH 1050 concepts."

	prereqs := ExtractPrerequisites(description)

	assert.Equal(t, []string{"CS 2420"}, prereqs)
}

func TestExtractPrerequisitesDeduplicates(t *testing.T) {
	description := "Prerequisites: CS 1400, CS 1400 and CS 1410."

	prereqs := ExtractPrerequisites(description)

	assert.Equal(t, []string{"CS 1400", "CS 1410"}, prereqs)
}

func TestExtractPrerequisitesEmptyDescription(t *testing.T) {
	assert.Empty(t, ExtractPrerequisites(""))
}
