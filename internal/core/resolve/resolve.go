package resolve

import (
	"github.com/redrock-labs/compass/internal/core/model"
)

// Catalog holds the canonical entity maps for a single pipeline run. It is
// created at the start of a run, filled page by page, and discarded when the
// run's sinks have consumed it; nothing in here outlives the run.
//
// Merge policies, per entity type:
//   - courses: last-write-wins on code
//   - programs: last-write-wins on name
//   - departments: first-seen-wins on prefix; later variants for the same
//     prefix are counted as duplicates and skipped
type Catalog struct {
	Courses     map[string]model.CourseRecord
	Programs    map[string]model.ProgramRecord
	Departments map[string]model.DepartmentRecord

	// seenPrefixes enforces the department first-seen policy across pages.
	seenPrefixes map[string]struct{}

	DuplicateDepartments int
}

func NewCatalog() *Catalog {
	return &Catalog{
		Courses:      make(map[string]model.CourseRecord),
		Programs:     make(map[string]model.ProgramRecord),
		Departments:  make(map[string]model.DepartmentRecord),
		seenPrefixes: make(map[string]struct{}),
	}
}

func (c *Catalog) MergeCourses(incoming map[string]model.CourseRecord) {
	for code, course := range incoming {
		c.Courses[code] = course
	}
}

func (c *Catalog) MergePrograms(incoming map[string]model.ProgramRecord) {
	for name, program := range incoming {
		c.Programs[name] = program
	}
}

func (c *Catalog) MergeDepartments(incoming map[string]model.DepartmentRecord) {
	for _, dept := range incoming {
		if _, seen := c.seenPrefixes[dept.Prefix]; seen {
			c.DuplicateDepartments++
			continue
		}
		c.seenPrefixes[dept.Prefix] = struct{}{}
		c.Departments[dept.Name] = dept
	}
}

// HasCourse reports whether a code resolves to a known course; the graph
// builder uses this to skip prerequisite edges with missing endpoints.
func (c *Catalog) HasCourse(code string) bool {
	_, ok := c.Courses[code]
	return ok
}
