package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
)

var testLimits = config.LimitsConfig{
	CourseDescriptionMax:     1000,
	ProgramDescriptionMax:    1000,
	ProgramNameMax:           500,
	DepartmentDescriptionMax: 500,
}

func TestPrepareCourseRowsTruncatesDescription(t *testing.T) {
	courses := map[string]model.CourseRecord{
		"CS 1400": {
			Code:          "CS 1400",
			Title:         "Fundamentals of Programming",
			Description:   strings.Repeat("x", 1500),
			Prerequisites: []string{"CS 1030", "MATH 1010"},
		},
	}

	rows, skipped := prepareCourseRows(courses, testLimits, "catalog.utahtech.edu")

	assert.Equal(t, 0, skipped)
	assert.Len(t, rows, 1)
	assert.Len(t, rows[0].Description, 1000)
	assert.Equal(t, "CS 1030, MATH 1010", rows[0].Prerequisites)
	assert.Equal(t, "catalog.utahtech.edu", rows[0].SourceID)
}

// The program key is the name AFTER truncation: two names sharing a 500-char
// head collapse into a single row.
func TestPrepareProgramRowsTruncatedNameCollision(t *testing.T) {
	head := strings.Repeat("a", 500)
	programs := map[string]model.ProgramRecord{
		head + " first":  {Name: head + " first", Type: model.ProgramBachelor},
		head + " second": {Name: head + " second", Type: model.ProgramBachelor},
	}

	rows, skipped := prepareProgramRows(programs, testLimits, "catalog.utahtech.edu")

	assert.Len(t, rows, 1)
	assert.Equal(t, 1, skipped)
	assert.Len(t, rows[0].Name, 500)
}

func TestPrepareProgramRowsTruncatesDescription(t *testing.T) {
	programs := map[string]model.ProgramRecord{
		"Bachelor of Science in Computer Science": {
			Name:        "Bachelor of Science in Computer Science",
			Description: strings.Repeat("d", 1200),
		},
	}

	rows, _ := prepareProgramRows(programs, testLimits, "catalog.utahtech.edu")

	assert.Len(t, rows[0].Description, 1000)
}

func TestPrepareDepartmentRowsSkipsDuplicatePrefix(t *testing.T) {
	departments := map[string]model.DepartmentRecord{
		"Computer Science": {Name: "Computer Science", Prefix: "CS", Description: strings.Repeat("c", 700)},
		"Computing":        {Name: "Computing", Prefix: "CS", Description: strings.Repeat("c", 700)},
	}

	rows, skipped := prepareDepartmentRows(departments, testLimits, "catalog.utahtech.edu")

	assert.Len(t, rows, 1)
	assert.Equal(t, 1, skipped)
	assert.Len(t, rows[0].Description, 500)
}

func TestTruncateUnbounded(t *testing.T) {
	// A zero limit means no truncation.
	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "ab", truncate("abc", 2))
}
