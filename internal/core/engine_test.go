package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redrock-labs/compass/internal/core/model"
)

// TestEngineExtract runs the pure extraction phase over raw pages and checks
// that courses, prerequisites, programs, and departments all land in one
// resolved catalog.
func TestEngineExtract(t *testing.T) {
	engine := &Engine{}

	pages := []model.CrawledPage{
		{
			URL: "https://catalog.utahtech.edu/programs/computer-science/",
			Content: `Bachelor of Science in Computer Science

CS 1400. Fundamentals of Programming. 4 Hours.
Introduction to problem solving with programming.

CS 1410. Object Oriented Programming. 4 Hours.
Class design and inheritance. Prerequisites: CS 1400 and MATH 1050.
`,
		},
		{
			URL: "https://catalog.utahtech.edu/programs/mathematics/",
			Content: `MATH 1050. College Algebra. 4 Hours.
Functions, graphs and systems of equations.
`,
		},
	}

	catalog := engine.Extract(pages)

	assert.Len(t, catalog.Courses, 3)
	assert.Equal(t, []string{"CS 1400", "MATH 1050"}, catalog.Courses["CS 1410"].Prerequisites)

	program, ok := catalog.Programs["Bachelor of Science in Computer Science"]
	assert.True(t, ok)
	assert.Equal(t, "Computer Science", program.Department)

	assert.Contains(t, catalog.Departments, "Computer Science")
	assert.Contains(t, catalog.Departments, "Mathematics")
	assert.Equal(t, "CS", catalog.Departments["Computer Science"].Prefix)
	assert.Equal(t, "MATH", catalog.Departments["Mathematics"].Prefix)
}

// The same page processed twice must not change the catalog shape: courses
// overwrite by code and the department prefix stays first-seen.
func TestEngineExtractIsIdempotentAcrossPages(t *testing.T) {
	engine := &Engine{}

	page := model.CrawledPage{
		URL: "https://catalog.utahtech.edu/programs/computer-science/",
		Content: `CS 1400. Fundamentals of Programming. 4 Hours.
Introduction to problem solving with programming.
`,
	}

	catalog := engine.Extract([]model.CrawledPage{page, page})

	assert.Len(t, catalog.Courses, 1)
	assert.Len(t, catalog.Departments, 1)
	assert.Equal(t, 1, catalog.DuplicateDepartments)
}
