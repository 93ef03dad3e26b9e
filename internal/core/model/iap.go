package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProgramLearningOutcome maps an outcome to the courses that satisfy it.
type ProgramLearningOutcome struct {
	ID                   string   `json:"id"`
	Description          string   `json:"description"`
	LowerDivisionCourses []string `json:"lower_division_courses"`
	UpperDivisionCourses []string `json:"upper_division_courses"`
}

// IAPTemplate is an Individualized Academic Plan under construction.
type IAPTemplate struct {
	StudentName    string `json:"student_name"`
	StudentID      string `json:"student_id"`
	StudentEmail   string `json:"student_email,omitempty"`
	StudentPhone   string `json:"student_phone,omitempty"`
	DegreeEmphasis string `json:"degree_emphasis"`

	CoverLetter      string                   `json:"cover_letter,omitempty"`
	MissionStatement string                   `json:"mission_statement,omitempty"`
	ProgramGoals     []string                 `json:"program_goals"`
	LearningOutcomes []ProgramLearningOutcome `json:"program_learning_outcomes"`

	CourseMappings     map[string][]string `json:"course_mappings"`
	ConcentrationAreas []string            `json:"concentration_areas"`

	GeneralEducation     []string `json:"general_education"`
	CoreCourses          []string `json:"core_courses"`
	ConcentrationCourses []string `json:"concentration_courses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionUpdate is a typed update for one known IAP section. Unknown section
// names are rejected when decoding, rather than accepted as free-form maps.
type SectionUpdate interface {
	Section() string
}

type CoverLetterUpdate struct {
	Text string `json:"text"`
}

func (CoverLetterUpdate) Section() string { return "cover_letter" }

type MissionStatementUpdate struct {
	Text string `json:"text"`
}

func (MissionStatementUpdate) Section() string { return "mission_statement" }

type ProgramGoalsUpdate struct {
	Goals []string `json:"goals"`
}

func (ProgramGoalsUpdate) Section() string { return "program_goals" }

type LearningOutcomesUpdate struct {
	Outcomes []ProgramLearningOutcome `json:"outcomes"`
}

func (LearningOutcomesUpdate) Section() string { return "program_learning_outcomes" }

type CourseMappingsUpdate struct {
	Mappings map[string][]string `json:"mappings"`
}

func (CourseMappingsUpdate) Section() string { return "course_mappings" }

type ConcentrationAreasUpdate struct {
	Areas []string `json:"areas"`
}

func (ConcentrationAreasUpdate) Section() string { return "concentration_areas" }

type AcademicPlanUpdate struct {
	GeneralEducation     []string `json:"general_education"`
	CoreCourses          []string `json:"core_courses"`
	ConcentrationCourses []string `json:"concentration_courses"`
}

func (AcademicPlanUpdate) Section() string { return "academic_plan" }

// ParseSectionUpdate decodes the payload for a named section into its typed
// update. An unrecognized section name is an error at the boundary.
func ParseSectionUpdate(section string, data json.RawMessage) (SectionUpdate, error) {
	decode := func(v SectionUpdate) (SectionUpdate, error) {
		if err := json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("failed to decode %s update: %w", section, err)
		}
		return v, nil
	}

	switch section {
	case "cover_letter":
		return decode(&CoverLetterUpdate{})
	case "mission_statement":
		return decode(&MissionStatementUpdate{})
	case "program_goals":
		return decode(&ProgramGoalsUpdate{})
	case "program_learning_outcomes":
		return decode(&LearningOutcomesUpdate{})
	case "course_mappings":
		return decode(&CourseMappingsUpdate{})
	case "concentration_areas":
		return decode(&ConcentrationAreasUpdate{})
	case "academic_plan":
		return decode(&AcademicPlanUpdate{})
	default:
		return nil, fmt.Errorf("unknown IAP section %q", section)
	}
}
