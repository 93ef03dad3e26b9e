package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/driver"
)

// Planner answers read-side planning queries over the built graph. A course
// code that is not in the graph yields empty results and zero contributions,
// never an error.
type Planner struct {
	Driver       driver.GraphDriver
	Requirements config.RequirementsConfig
}

func NewPlanner(d driver.GraphDriver, requirements config.RequirementsConfig) *Planner {
	return &Planner{Driver: d, Requirements: requirements}
}

// PrerequisiteChain enumerates every distinct prerequisite path ending at the
// target course, bounded by maxDepth. Each path carries cumulative credits
// and a coarse semester estimate, not a scheduling guarantee.
func (p *Planner) PrerequisiteChain(ctx context.Context, courseCode string, maxDepth int) ([]model.PrerequisitePath, error) {
	if maxDepth <= 0 || maxDepth > 10 {
		maxDepth = 10
	}

	result, err := p.Driver.ExecuteQuery(ctx, driver.PrerequisitePathsQuery, map[string]interface{}{
		"code":      courseCode,
		"max_depth": maxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query prerequisite paths: %w", err)
	}

	var paths []model.PrerequisitePath
	for _, record := range result.Records {
		coursePath := asStrings(recordValue(record, "course_path"))
		creditPath := asInts(recordValue(record, "credit_path"))
		depth := asInt(recordValue(record, "depth"))

		total := 0
		for _, credits := range creditPath {
			total += credits
		}

		semesters := (depth + 1) / 2
		if semesters < 1 {
			semesters = 1
		}

		paths = append(paths, model.PrerequisitePath{
			TargetCourse:    courseCode,
			Path:            coursePath,
			TotalCredits:    total,
			SemestersNeeded: semesters,
		})
	}

	return paths, nil
}

// ValidateSequence simulates taking the courses in the given order and
// reports every course whose direct prerequisites are not yet completed.
// Only direct prerequisites are checked, not the transitive closure.
func (p *Planner) ValidateSequence(ctx context.Context, courseCodes []string) (*model.SequenceReport, error) {
	courses := make(map[string]model.CourseNode)
	for _, code := range courseCodes {
		course, found, err := p.GetCourse(ctx, code)
		if err != nil {
			return nil, err
		}
		if found {
			courses[code] = course
		}
	}

	var violations []model.SequenceViolation
	completed := make(map[string]bool)
	for _, code := range courseCodes {
		course, known := courses[code]
		if !known {
			continue
		}

		var missing []string
		for _, prereq := range course.Prerequisites {
			if !completed[prereq] {
				missing = append(missing, prereq)
			}
		}
		if len(missing) > 0 {
			violations = append(violations, model.SequenceViolation{
				Course:               code,
				MissingPrerequisites: missing,
				Message:              fmt.Sprintf("%s requires %s which are not completed yet", code, strings.Join(missing, ", ")),
			})
		}
		completed[code] = true
	}

	stats := model.SequenceStats{TotalCourses: len(courses)}
	disciplines := make(map[string]bool)
	for _, course := range courses {
		stats.TotalCredits += course.Credits
		if course.Level == model.LevelUpperDivision {
			stats.UpperDivisionCredits += course.Credits
		}
		if course.Department != "" && !disciplines[course.Department] {
			disciplines[course.Department] = true
			stats.Disciplines = append(stats.Disciplines, course.Department)
		}
	}
	stats.DisciplineCount = len(stats.Disciplines)

	return &model.SequenceReport{
		Valid:      len(violations) == 0,
		Violations: violations,
		Statistics: stats,
		Courses:    courses,
	}, nil
}

// RecommendSequence orders the target courses with a topological sort over
// their prerequisites-within-subset, then packs the order greedily into terms
// under the credit cap.
func (p *Planner) RecommendSequence(ctx context.Context, targetCourses []string, maxCreditsPerTerm, maxTerms int) (*model.AcademicPlan, error) {
	if maxCreditsPerTerm <= 0 {
		maxCreditsPerTerm = 15
	}

	courses := make(map[string]model.CourseNode)
	prereqs := make(map[string][]string)
	var known []string
	for _, code := range uniqueCodes(targetCourses) {
		course, found, err := p.GetCourse(ctx, code)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		courses[code] = course
		prereqs[code] = course.Prerequisites
		known = append(known, code)
	}

	ordered := topologicalSort(known, prereqs)

	var sequence [][]string
	var term []string
	termCredits := 0
	for _, code := range ordered {
		course := courses[code]
		if termCredits+course.Credits > maxCreditsPerTerm && len(term) > 0 {
			sequence = append(sequence, term)
			term = []string{code}
			termCredits = course.Credits
		} else {
			term = append(term, code)
			termCredits += course.Credits
		}
	}
	if len(term) > 0 {
		sequence = append(sequence, term)
	}
	if maxTerms > 0 && len(sequence) > maxTerms {
		sequence = sequence[:maxTerms]
	}

	plan := &model.AcademicPlan{
		Courses:             known,
		RecommendedSequence: sequence,
	}
	disciplines := make(map[string]bool)
	for _, course := range courses {
		plan.TotalCredits += course.Credits
		if course.Level == model.LevelUpperDivision {
			plan.UpperDivisionCredits += course.Credits
		}
		if course.Department != "" && !disciplines[course.Department] {
			disciplines[course.Department] = true
			plan.Disciplines = append(plan.Disciplines, course.Department)
		}
	}

	return plan, nil
}

// FindAlternatives returns courses with the same level and credit count,
// optionally restricted to the same department, excluding the course itself.
func (p *Planner) FindAlternatives(ctx context.Context, courseCode string, sameDepartment bool, limit int) ([]model.CourseNode, error) {
	if limit <= 0 {
		limit = 10
	}

	course, found, err := p.GetCourse(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	params := map[string]interface{}{
		"code":    courseCode,
		"level":   course.Level,
		"credits": course.Credits,
		"prefix":  nil,
		"limit":   limit,
	}
	if sameDepartment && course.Department != "" {
		params["prefix"] = course.Department
	}

	result, err := p.Driver.ExecuteQuery(ctx, driver.FindAlternativesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query alternatives: %w", err)
	}

	var alternatives []model.CourseNode
	for _, record := range result.Records {
		alternatives = append(alternatives, courseFromRecord(record))
	}
	return alternatives, nil
}

// FindCoursesByLevel lists courses at the given level, optionally restricted
// to one department prefix.
func (p *Planner) FindCoursesByLevel(ctx context.Context, level, department string, limit int) ([]model.CourseNode, error) {
	if limit <= 0 {
		limit = 50
	}

	params := map[string]interface{}{
		"level":  level,
		"prefix": nil,
		"limit":  limit,
	}
	if department != "" {
		params["prefix"] = department
	}

	result, err := p.Driver.ExecuteQuery(ctx, driver.CoursesByLevelQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses by level: %w", err)
	}

	var courses []model.CourseNode
	for _, record := range result.Records {
		courses = append(courses, courseFromRecord(record))
	}
	return courses, nil
}

// AnalyzeProgress aggregates credits, upper-division credits and distinct
// disciplines for the completed and target course sets and checks them
// against the graduation thresholds.
func (p *Planner) AnalyzeProgress(ctx context.Context, completedCourses, targetCourses []string) (*model.ProgressReport, error) {
	courses := make(map[string]model.CourseNode)
	for _, code := range uniqueCodes(append(append([]string{}, completedCourses...), targetCourses...)) {
		course, found, err := p.GetCourse(ctx, code)
		if err != nil {
			return nil, err
		}
		if found {
			courses[code] = course
		}
	}

	completed := sideFor(completedCourses, courses, false)

	completedSet := make(map[string]bool, len(completedCourses))
	for _, code := range completedCourses {
		completedSet[code] = true
	}
	var remainingCodes []string
	for _, code := range targetCourses {
		if !completedSet[code] {
			remainingCodes = append(remainingCodes, code)
		}
	}
	remaining := sideFor(remainingCodes, courses, true)

	totalCredits := completed.Credits + remaining.Credits
	totalUpper := completed.UpperDivisionCredits + remaining.UpperDivisionCredits

	req := p.Requirements
	creditReq := requirementStatus(req.TotalCredits, totalCredits)
	upperReq := requirementStatus(req.UpperDivisionCredits, totalUpper)
	disciplineReq := requirementStatus(req.Disciplines, completed.DisciplineCount)

	percentage := 0.0
	if req.TotalCredits > 0 {
		percentage = float64(totalCredits) / float64(req.TotalCredits) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	return &model.ProgressReport{
		Completed:            completed,
		Remaining:            remaining,
		TotalCredits:         totalCredits,
		UpperDivisionCredits: totalUpper,
		CreditRequirement:    creditReq,
		UpperDivisionReq:     upperReq,
		DisciplineReq:        disciplineReq,
		CompletionPercentage: percentage,
		ReadyToGraduate:      creditReq.Met && upperReq.Met && disciplineReq.Met,
	}, nil
}

func requirementStatus(required, current int) model.RequirementStatus {
	remaining := required - current
	if remaining < 0 {
		remaining = 0
	}
	return model.RequirementStatus{
		Required:  required,
		Current:   current,
		Met:       current >= required,
		Remaining: remaining,
	}
}

func sideFor(codes []string, courses map[string]model.CourseNode, withList bool) model.ProgressSide {
	side := model.ProgressSide{Courses: len(codes)}
	if withList {
		side.CourseList = codes
	}
	disciplines := make(map[string]bool)
	for _, code := range codes {
		course, ok := courses[code]
		if !ok {
			continue
		}
		side.Credits += course.Credits
		if course.Level == model.LevelUpperDivision {
			side.UpperDivisionCredits += course.Credits
		}
		if course.Department != "" && !disciplines[course.Department] {
			disciplines[course.Department] = true
			side.Disciplines = append(side.Disciplines, course.Department)
		}
	}
	side.DisciplineCount = len(side.Disciplines)
	return side
}

// GetCourse fetches one course with its direct prerequisites. The second
// return is false when the code is not in the graph.
func (p *Planner) GetCourse(ctx context.Context, code string) (model.CourseNode, bool, error) {
	result, err := p.Driver.ExecuteQuery(ctx, driver.GetCourseWithPrereqsQuery, map[string]interface{}{
		"code": code,
	})
	if err != nil {
		return model.CourseNode{}, false, fmt.Errorf("failed to fetch course %s: %w", code, err)
	}
	if len(result.Records) == 0 {
		return model.CourseNode{}, false, nil
	}
	return courseFromRecord(result.Records[0]), true, nil
}

func courseFromRecord(record *neo4j.Record) model.CourseNode {
	credits := asInt(recordValue(record, "credits"))
	if credits == 0 {
		credits = 3
	}
	return model.CourseNode{
		Code:          asString(recordValue(record, "code")),
		Title:         asString(recordValue(record, "title")),
		Credits:       credits,
		Level:         asString(recordValue(record, "level")),
		Department:    asString(recordValue(record, "department")),
		Description:   asString(recordValue(record, "description")),
		Prerequisites: asStrings(recordValue(record, "prerequisites")),
	}
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	var out []string
	for _, code := range codes {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}
