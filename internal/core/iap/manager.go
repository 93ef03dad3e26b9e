package iap

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
)

// trackedSections are the sections counted toward plan completion, in
// review order.
var trackedSections = []string{
	"cover_letter",
	"mission_statement",
	"program_goals",
	"program_learning_outcomes",
	"course_mappings",
	"concentration_areas",
	"academic_plan",
}

// Credit thresholds for the concentration areas: each area needs 14 credits
// with 7 upper-division, and the areas together need 42 credits with 21
// upper-division.
const (
	minAreaCredits          = 14
	minAreaUpperCredits     = 7
	minConcentrationCredits = 42
	minConcentrationUpper   = 21
)

// CourseLookup resolves catalog data for concentration credit checks. A
// course missing from the graph falls back to three credits at the level
// implied by its catalog number.
type CourseLookup interface {
	GetCourse(ctx context.Context, code string) (model.CourseNode, bool, error)
}

// SectionStatus reports one section of a validation pass.
type SectionStatus struct {
	Complete bool `json:"complete"`
	Count    int  `json:"count,omitempty"`
}

// ValidationReport is the result of checking a plan against program
// requirements.
type ValidationReport struct {
	StudentID            string                   `json:"student_id"`
	Valid                bool                     `json:"valid"`
	Sections             map[string]SectionStatus `json:"sections"`
	Violations           []string                 `json:"violations,omitempty"`
	CompletionPercentage float64                  `json:"completion_percentage"`
	TotalCreditsRequired int                      `json:"total_credits_required"`
	UpperDivisionCredits int                      `json:"upper_division_credits_required"`
	MinDisciplines       int                      `json:"min_disciplines"`

	ConcentrationCredits      int `json:"concentration_credits"`
	ConcentrationUpperCredits int `json:"concentration_upper_division_credits"`
}

// Manager owns individualized academic plans keyed by student ID. Plans
// live in memory for the server's lifetime; persistence would sit behind
// this type.
type Manager struct {
	mu           sync.RWMutex
	plans        map[string]*model.IAPTemplate
	requirements config.RequirementsConfig
	courses      CourseLookup
}

// NewManager builds a plan manager. courses may be nil, in which case
// concentration credit checks run on catalog-number fallbacks alone.
func NewManager(requirements config.RequirementsConfig, courses CourseLookup) *Manager {
	return &Manager{
		plans:        make(map[string]*model.IAPTemplate),
		requirements: requirements,
		courses:      courses,
	}
}

// CreateTemplate starts a new plan seeded with the program's standard goals
// and learning outcomes. An existing plan for the same student is replaced.
func (m *Manager) CreateTemplate(studentName, studentID, degreeEmphasis, email, phone string) (*model.IAPTemplate, error) {
	if studentName == "" || studentID == "" || degreeEmphasis == "" {
		return nil, fmt.Errorf("student name, student ID, and degree emphasis are required")
	}

	now := time.Now().UTC()
	plan := &model.IAPTemplate{
		StudentName:        studentName,
		StudentID:          studentID,
		StudentEmail:       email,
		StudentPhone:       phone,
		DegreeEmphasis:     degreeEmphasis,
		ProgramGoals:       defaultGoals(degreeEmphasis),
		LearningOutcomes:   defaultOutcomes(degreeEmphasis),
		CourseMappings:     make(map[string][]string),
		ConcentrationAreas: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	m.mu.Lock()
	m.plans[studentID] = plan
	m.mu.Unlock()

	return clonePlan(plan), nil
}

// Get returns a copy of the stored plan.
func (m *Manager) Get(studentID string) (*model.IAPTemplate, error) {
	m.mu.RLock()
	plan, ok := m.plans[studentID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no plan found for student %s", studentID)
	}
	return clonePlan(plan), nil
}

// UpdateSection applies one typed section update to a stored plan.
func (m *Manager) UpdateSection(studentID string, update model.SectionUpdate) (*model.IAPTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.plans[studentID]
	if !ok {
		return nil, fmt.Errorf("no plan found for student %s", studentID)
	}

	switch u := update.(type) {
	case *model.CoverLetterUpdate:
		plan.CoverLetter = u.Text
	case *model.MissionStatementUpdate:
		plan.MissionStatement = u.Text
	case *model.ProgramGoalsUpdate:
		plan.ProgramGoals = u.Goals
	case *model.LearningOutcomesUpdate:
		plan.LearningOutcomes = u.Outcomes
	case *model.CourseMappingsUpdate:
		plan.CourseMappings = u.Mappings
	case *model.ConcentrationAreasUpdate:
		plan.ConcentrationAreas = u.Areas
	case *model.AcademicPlanUpdate:
		plan.GeneralEducation = u.GeneralEducation
		plan.CoreCourses = u.CoreCourses
		plan.ConcentrationCourses = u.ConcentrationCourses
	default:
		return nil, fmt.Errorf("unsupported section update %T", update)
	}

	plan.UpdatedAt = time.Now().UTC()
	return clonePlan(plan), nil
}

// Validate checks a stored plan against program requirements: every tracked
// section present, six goals, six learning outcomes, and at least three
// concentration areas. Once enough areas exist, the courses mapped to each
// area are checked against the concentration credit thresholds.
func (m *Manager) Validate(ctx context.Context, studentID string) (*ValidationReport, error) {
	m.mu.RLock()
	plan, ok := m.plans[studentID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no plan found for student %s", studentID)
	}

	report := &ValidationReport{
		StudentID:            studentID,
		Valid:                true,
		Sections:             make(map[string]SectionStatus),
		TotalCreditsRequired: m.requirements.TotalCredits,
		UpperDivisionCredits: m.requirements.UpperDivisionCredits,
		MinDisciplines:       m.requirements.Disciplines,
	}

	completed := 0
	for _, section := range trackedSections {
		status := sectionStatus(plan, section)
		report.Sections[section] = status
		if status.Complete {
			completed++
		} else {
			report.Valid = false
			report.Violations = append(report.Violations, fmt.Sprintf("missing required section: %s", section))
		}
	}
	report.CompletionPercentage = float64(completed) / float64(len(trackedSections)) * 100

	if len(plan.ProgramGoals) < 6 {
		report.Valid = false
		report.Violations = append(report.Violations,
			fmt.Sprintf("need 6 program goals, found %d", len(plan.ProgramGoals)))
	}
	if len(plan.LearningOutcomes) < 6 {
		report.Valid = false
		report.Violations = append(report.Violations,
			fmt.Sprintf("need 6 program learning outcomes, found %d", len(plan.LearningOutcomes)))
	}
	if len(plan.ConcentrationAreas) < m.requirements.Disciplines {
		report.Valid = false
		report.Violations = append(report.Violations,
			fmt.Sprintf("need %d+ concentration areas, found %d", m.requirements.Disciplines, len(plan.ConcentrationAreas)))
	} else {
		m.validateConcentrationCredits(ctx, plan, report)
	}

	return report, nil
}

func (m *Manager) validateConcentrationCredits(ctx context.Context, plan *model.IAPTemplate, report *ValidationReport) {
	for _, area := range plan.ConcentrationAreas {
		areaCredits := 0
		areaUpper := 0
		for _, code := range plan.CourseMappings[area] {
			credits, level := m.courseCredits(ctx, code)
			areaCredits += credits
			if level == model.LevelUpperDivision {
				areaUpper += credits
			}
		}
		report.ConcentrationCredits += areaCredits
		report.ConcentrationUpperCredits += areaUpper

		if areaCredits < minAreaCredits {
			report.Valid = false
			report.Violations = append(report.Violations,
				fmt.Sprintf("%s: insufficient credits (%d/%d)", area, areaCredits, minAreaCredits))
		}
		if areaUpper < minAreaUpperCredits {
			report.Valid = false
			report.Violations = append(report.Violations,
				fmt.Sprintf("%s: insufficient upper-division credits (%d/%d)", area, areaUpper, minAreaUpperCredits))
		}
	}

	if report.ConcentrationCredits < minConcentrationCredits {
		report.Valid = false
		report.Violations = append(report.Violations,
			fmt.Sprintf("total concentration credits insufficient (%d/%d)", report.ConcentrationCredits, minConcentrationCredits))
	}
	if report.ConcentrationUpperCredits < minConcentrationUpper {
		report.Valid = false
		report.Violations = append(report.Violations,
			fmt.Sprintf("upper-division concentration credits insufficient (%d/%d)", report.ConcentrationUpperCredits, minConcentrationUpper))
	}
}

func (m *Manager) courseCredits(ctx context.Context, code string) (int, string) {
	if m.courses != nil {
		if course, found, err := m.courses.GetCourse(ctx, code); err == nil && found {
			return course.Credits, course.Level
		}
	}

	level := model.LevelLowerDivision
	if fields := strings.Fields(code); len(fields) == 2 {
		if number, err := strconv.Atoi(fields[1]); err == nil {
			level = model.LevelForNumber(number)
		}
	}
	return 3, level
}

func sectionStatus(plan *model.IAPTemplate, section string) SectionStatus {
	switch section {
	case "cover_letter":
		return SectionStatus{Complete: plan.CoverLetter != ""}
	case "mission_statement":
		return SectionStatus{Complete: plan.MissionStatement != ""}
	case "program_goals":
		return SectionStatus{Complete: len(plan.ProgramGoals) > 0, Count: len(plan.ProgramGoals)}
	case "program_learning_outcomes":
		return SectionStatus{Complete: len(plan.LearningOutcomes) > 0, Count: len(plan.LearningOutcomes)}
	case "course_mappings":
		return SectionStatus{Complete: len(plan.CourseMappings) > 0, Count: len(plan.CourseMappings)}
	case "concentration_areas":
		return SectionStatus{Complete: len(plan.ConcentrationAreas) > 0, Count: len(plan.ConcentrationAreas)}
	case "academic_plan":
		complete := len(plan.GeneralEducation) > 0 || len(plan.CoreCourses) > 0 || len(plan.ConcentrationCourses) > 0
		return SectionStatus{Complete: complete}
	default:
		return SectionStatus{}
	}
}

func defaultGoals(degreeEmphasis string) []string {
	return []string{
		fmt.Sprintf("Students will demonstrate expertise in %s principles and practices", degreeEmphasis),
		"Students will apply interdisciplinary approaches to solve complex problems",
		"Students will communicate effectively across multiple disciplines",
		"Students will conduct independent research in their chosen field",
		"Students will demonstrate ethical reasoning and professional responsibility",
		"Students will synthesize knowledge from diverse academic perspectives",
	}
}

func defaultOutcomes(degreeEmphasis string) []model.ProgramLearningOutcome {
	descriptions := []string{
		fmt.Sprintf("Students will analyze complex problems using %s methodologies", degreeEmphasis),
		"Students will demonstrate effective written and oral communication skills",
		"Students will apply research methods appropriate to their field of study",
		"Students will evaluate information critically from multiple perspectives",
		"Students will demonstrate professional competency in their chosen field",
		"Students will integrate knowledge across disciplinary boundaries",
	}

	outcomes := make([]model.ProgramLearningOutcome, len(descriptions))
	for i, desc := range descriptions {
		outcomes[i] = model.ProgramLearningOutcome{
			ID:                   fmt.Sprintf("PLO%d", i+1),
			Description:          desc,
			LowerDivisionCourses: []string{},
			UpperDivisionCourses: []string{},
		}
	}
	return outcomes
}

func clonePlan(plan *model.IAPTemplate) *model.IAPTemplate {
	out := *plan
	out.ProgramGoals = append([]string(nil), plan.ProgramGoals...)
	out.LearningOutcomes = append([]model.ProgramLearningOutcome(nil), plan.LearningOutcomes...)
	out.ConcentrationAreas = append([]string(nil), plan.ConcentrationAreas...)
	out.GeneralEducation = append([]string(nil), plan.GeneralEducation...)
	out.CoreCourses = append([]string(nil), plan.CoreCourses...)
	out.ConcentrationCourses = append([]string(nil), plan.ConcentrationCourses...)
	out.CourseMappings = make(map[string][]string, len(plan.CourseMappings))
	for k, v := range plan.CourseMappings {
		out.CourseMappings[k] = append([]string(nil), v...)
	}
	return &out
}
