package store

import (
	"strings"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
)

type DepartmentRow struct {
	Name        string
	Prefix      string
	Description string
	SourceID    string
}

type CourseRow struct {
	Code          string
	Title         string
	Credits       int
	Level         string
	Description   string
	Prerequisites string
	Prefix        string
	Number        string
	Embedding     []float32
	SourceID      string
}

type ProgramRow struct {
	Name        string
	Type        string
	Level       string
	Description string
	SourceID    string
}

// truncate bounds a text field to the store's column limit.
func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// The relational schema has no composite unique constraints, so duplicate
// suppression happens here: the first row for a key wins, later ones are
// skipped. For programs the key is the name AFTER truncation; two long names
// sharing a 500-char head collapse into one row by design.

func prepareDepartmentRows(departments map[string]model.DepartmentRecord, limits config.LimitsConfig, sourceID string) (rows []DepartmentRow, skipped int) {
	seen := make(map[string]bool)
	for _, dept := range departments {
		if seen[dept.Prefix] {
			skipped++
			continue
		}
		seen[dept.Prefix] = true
		rows = append(rows, DepartmentRow{
			Name:        dept.Name,
			Prefix:      dept.Prefix,
			Description: truncate(dept.Description, limits.DepartmentDescriptionMax),
			SourceID:    sourceID,
		})
	}
	return rows, skipped
}

func prepareCourseRows(courses map[string]model.CourseRecord, limits config.LimitsConfig, sourceID string) (rows []CourseRow, skipped int) {
	seen := make(map[string]bool)
	for _, course := range courses {
		if seen[course.Code] {
			skipped++
			continue
		}
		seen[course.Code] = true
		rows = append(rows, CourseRow{
			Code:          course.Code,
			Title:         course.Title,
			Credits:       course.Credits,
			Level:         course.Level,
			Description:   truncate(course.Description, limits.CourseDescriptionMax),
			Prerequisites: strings.Join(course.Prerequisites, ", "),
			Prefix:        course.Prefix,
			Number:        course.Number,
			Embedding:     course.Embedding,
			SourceID:      sourceID,
		})
	}
	return rows, skipped
}

func prepareProgramRows(programs map[string]model.ProgramRecord, limits config.LimitsConfig, sourceID string) (rows []ProgramRow, skipped int) {
	seen := make(map[string]bool)
	for _, program := range programs {
		name := truncate(program.Name, limits.ProgramNameMax)
		if seen[name] {
			skipped++
			continue
		}
		seen[name] = true
		rows = append(rows, ProgramRow{
			Name:        name,
			Type:        program.Type,
			Level:       program.Level,
			Description: truncate(program.Description, limits.ProgramDescriptionMax),
			SourceID:    sourceID,
		})
	}
	return rows, skipped
}
