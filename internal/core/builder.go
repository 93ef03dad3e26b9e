package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/redrock-labs/compass/internal/core/resolve"
	"github.com/redrock-labs/compass/internal/driver"
	"github.com/redrock-labs/compass/internal/logger"
)

// RelationshipCounts tallies the edges created during one populate pass.
type RelationshipCounts struct {
	DepartmentCourse     int `json:"department_course"`
	Prerequisites        int `json:"prerequisites"`
	ProgramDepartment    int `json:"program_department"`
	UniversityDepartment int `json:"university_department"`
}

// PopulateResult is the structured summary of one populate pass. Partial
// failures surface here as counts and messages; the pass itself keeps going.
type PopulateResult struct {
	Departments   int                `json:"departments"`
	Courses       int                `json:"courses"`
	Programs      int                `json:"programs"`
	Relationships RelationshipCounts `json:"relationships"`
	SkippedLinks  int                `json:"skipped_links"`
	Errors        []string           `json:"errors,omitempty"`
}

// Builder writes the resolved catalog into the graph store. All writes are
// MERGE upserts keyed on natural keys, so repeating a pass on the same
// catalog changes nothing.
type Builder struct {
	Driver     driver.GraphDriver
	University string
	Log        *logger.Logger
}

func NewBuilder(d driver.GraphDriver, university string, log *logger.Logger) *Builder {
	return &Builder{Driver: d, University: university, Log: log.With("component", "builder")}
}

func (b *Builder) BuildSchema(ctx context.Context) error {
	return b.Driver.BuildSchema(ctx)
}

// Populate upserts all nodes, then creates relationships. Node upserts must
// complete before any edge is attempted; an edge referencing a node that was
// never written is skipped and counted, never an error.
func (b *Builder) Populate(ctx context.Context, catalog *resolve.Catalog) (*PopulateResult, error) {
	result := &PopulateResult{}

	if err := b.upsertNodes(ctx, catalog, result); err != nil {
		return result, err
	}
	b.createRelationships(ctx, catalog, result)

	b.Log.Info("graph populated",
		"departments", result.Departments,
		"courses", result.Courses,
		"programs", result.Programs,
		"skipped_links", result.SkippedLinks,
		"errors", len(result.Errors))

	return result, nil
}

func (b *Builder) upsertNodes(ctx context.Context, catalog *resolve.Catalog, result *PopulateResult) error {
	_, err := b.Driver.ExecuteQuery(ctx, driver.SaveUniversityQuery, map[string]interface{}{
		"name":     b.University,
		"location": "St. George, Utah",
		"website":  "https://utahtech.edu",
	})
	if err != nil {
		return fmt.Errorf("failed to upsert university: %w", err)
	}

	for _, dept := range catalog.Departments {
		_, err := b.Driver.ExecuteQuery(ctx, driver.SaveDepartmentQuery, map[string]interface{}{
			"prefix":      dept.Prefix,
			"name":        dept.Name,
			"code":        dept.Code,
			"description": dept.Description,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("department %s: %v", dept.Prefix, err))
			continue
		}
		result.Departments++
	}

	for _, course := range catalog.Courses {
		_, err := b.Driver.ExecuteQuery(ctx, driver.SaveCourseQuery, map[string]interface{}{
			"code":               course.Code,
			"prefix":             course.Prefix,
			"number":             course.Number,
			"title":              course.Title,
			"credits":            course.Credits,
			"level":              course.Level,
			"description":        course.Description,
			"prerequisites_text": strings.Join(course.Prerequisites, ", "),
			"offered_semesters":  course.OfferedSemesters,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("course %s: %v", course.Code, err))
			continue
		}
		result.Courses++
	}

	for _, program := range catalog.Programs {
		_, err := b.Driver.ExecuteQuery(ctx, driver.SaveProgramQuery, map[string]interface{}{
			"name":          program.Name,
			"code":          program.Code,
			"type":          program.Type,
			"level":         program.Level,
			"total_credits": program.TotalCredits,
			"description":   program.Description,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("program %s: %v", program.Name, err))
			continue
		}
		result.Programs++
	}

	return nil
}

func (b *Builder) createRelationships(ctx context.Context, catalog *resolve.Catalog, result *PopulateResult) {
	for _, course := range catalog.Courses {
		_, err := b.Driver.ExecuteQuery(ctx, driver.LinkDepartmentCourseQuery, map[string]interface{}{
			"course_code": course.Code,
			"prefix":      course.Prefix,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("link %s to department: %v", course.Code, err))
			continue
		}
		result.Relationships.DepartmentCourse++
	}

	for _, course := range catalog.Courses {
		for _, prereqCode := range course.Prerequisites {
			if !catalog.HasCourse(prereqCode) {
				b.Log.Debug("skipping prerequisite edge with missing endpoint",
					"course", course.Code, "prerequisite", prereqCode)
				result.SkippedLinks++
				continue
			}
			_, err := b.Driver.ExecuteQuery(ctx, driver.LinkPrerequisiteQuery, map[string]interface{}{
				"prereq_code": prereqCode,
				"course_code": course.Code,
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("prerequisite %s -> %s: %v", prereqCode, course.Code, err))
				continue
			}
			result.Relationships.Prerequisites++
		}
	}

	for _, program := range catalog.Programs {
		prefix := departmentPrefix(program.Department)
		if prefix == "" {
			result.SkippedLinks++
			continue
		}
		_, err := b.Driver.ExecuteQuery(ctx, driver.LinkDepartmentProgramQuery, map[string]interface{}{
			"program_name": program.Name,
			"prefix":       prefix,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("link program %s: %v", program.Name, err))
			continue
		}
		result.Relationships.ProgramDepartment++
	}

	res, err := b.Driver.ExecuteQuery(ctx, driver.LinkUniversityDepartmentsQuery, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("university hierarchy: %v", err))
		return
	}
	if len(res.Records) > 0 {
		if created, ok := res.Records[0].Get("created"); ok {
			if n, ok := created.(int64); ok {
				result.Relationships.UniversityDepartment = int(n)
			}
		}
	}
}

// departmentPrefixes maps common department names to their course prefix.
var departmentPrefixes = map[string]string{
	"art":              "ART",
	"computer science": "CS",
	"nursing":          "NURS",
	"business":         "BUS",
	"english":          "ENGL",
	"mathematics":      "MATH",
	"biology":          "BIOL",
	"chemistry":        "CHEM",
	"physics":          "PHYS",
	"psychology":       "PSY",
	"history":          "HIST",
	"geography":        "GEOG",
}

// departmentPrefix resolves a free-text department label to a course prefix,
// falling back to the first four letters of the first word.
func departmentPrefix(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return ""
	}
	for key, prefix := range departmentPrefixes {
		if strings.Contains(lower, key) {
			return prefix
		}
	}

	words := strings.Fields(lower)
	if len(words) == 0 {
		return ""
	}
	first := words[0]
	if len(first) > 4 {
		first = first[:4]
	}
	return strings.ToUpper(first)
}
