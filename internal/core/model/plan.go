package model

// CourseNode is the read-side view of a course in the knowledge graph,
// including its direct prerequisites.
type CourseNode struct {
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Credits       int      `json:"credits"`
	Level         string   `json:"level"`
	Department    string   `json:"department"`
	Description   string   `json:"description,omitempty"`
	Prerequisites []string `json:"prerequisites"`
}

// PrerequisitePath is one prerequisite chain ending at TargetCourse.
type PrerequisitePath struct {
	TargetCourse    string   `json:"target_course"`
	Path            []string `json:"path"`
	TotalCredits    int      `json:"total_credits"`
	SemestersNeeded int      `json:"semesters_needed"`
}

// SequenceViolation records a course taken before one of its direct prerequisites.
type SequenceViolation struct {
	Course               string   `json:"course"`
	MissingPrerequisites []string `json:"missing_prerequisites"`
	Message              string   `json:"message"`
}

type SequenceStats struct {
	TotalCourses         int      `json:"total_courses"`
	TotalCredits         int      `json:"total_credits"`
	UpperDivisionCredits int      `json:"upper_division_credits"`
	Disciplines          []string `json:"disciplines"`
	DisciplineCount      int      `json:"discipline_count"`
}

// SequenceReport is the result of validating an ordered course list.
// Validation is against direct prerequisites only, not the transitive closure.
type SequenceReport struct {
	Valid      bool                  `json:"valid"`
	Violations []SequenceViolation   `json:"violations"`
	Statistics SequenceStats         `json:"statistics"`
	Courses    map[string]CourseNode `json:"course_details"`
}

// AcademicPlan is a recommended semester-by-semester course sequence.
type AcademicPlan struct {
	Courses              []string   `json:"courses"`
	TotalCredits         int        `json:"total_credits"`
	UpperDivisionCredits int        `json:"upper_division_credits"`
	Disciplines          []string   `json:"disciplines"`
	RecommendedSequence  [][]string `json:"recommended_sequence"`
}

// RequirementStatus tracks one graduation requirement.
type RequirementStatus struct {
	Required  int  `json:"required"`
	Current   int  `json:"current"`
	Met       bool `json:"met"`
	Remaining int  `json:"remaining"`
}

type ProgressSide struct {
	Courses              int      `json:"courses"`
	CourseList           []string `json:"course_list,omitempty"`
	Credits              int      `json:"credits"`
	UpperDivisionCredits int      `json:"upper_division_credits"`
	Disciplines          []string `json:"disciplines,omitempty"`
	DisciplineCount      int      `json:"discipline_count"`
}

// ProgressReport summarizes degree progress against the configured thresholds.
type ProgressReport struct {
	Completed            ProgressSide      `json:"completed"`
	Remaining            ProgressSide      `json:"remaining"`
	TotalCredits         int               `json:"total_credits"`
	UpperDivisionCredits int               `json:"upper_division_credits"`
	CreditRequirement    RequirementStatus `json:"credit_requirement"`
	UpperDivisionReq     RequirementStatus `json:"upper_division_requirement"`
	DisciplineReq        RequirementStatus `json:"discipline_requirement"`
	CompletionPercentage float64           `json:"completion_percentage"`
	ReadyToGraduate      bool              `json:"ready_to_graduate"`
}
