package model

// Course level classification by catalog number.
const (
	LevelLowerDivision = "lower_division"
	LevelUpperDivision = "upper_division"
	LevelGraduate      = "graduate"
)

// Program types and levels.
const (
	ProgramBachelor    = "Bachelor"
	ProgramMaster      = "Master"
	ProgramCertificate = "Certificate"
	ProgramMinor       = "Minor"

	ProgramLevelUndergraduate = "undergraduate"
	ProgramLevelGraduate      = "graduate"
)

// LevelForNumber classifies a catalog number. The graduate check runs before
// the upper-division check; a 5000-level course is graduate, not upper-division.
func LevelForNumber(number int) string {
	switch {
	case number >= 5000:
		return LevelGraduate
	case number >= 3000:
		return LevelUpperDivision
	default:
		return LevelLowerDivision
	}
}

// CourseRecord is the canonical extracted course entity, keyed by Code.
type CourseRecord struct {
	Code             string    `json:"code"`
	Prefix           string    `json:"prefix"`
	Number           string    `json:"number"`
	Title            string    `json:"title"`
	Credits          int       `json:"credits"`
	Level            string    `json:"level"`
	Description      string    `json:"description"`
	Prerequisites    []string  `json:"prerequisites"`
	Corequisites     []string  `json:"corequisites"`
	OfferedSemesters []string  `json:"offered_semesters"`
	Embedding        []float32 `json:"embedding,omitempty"`
}

// ProgramRecord is the canonical extracted program entity, keyed by Name.
type ProgramRecord struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Type         string `json:"type"`
	Level        string `json:"level"`
	TotalCredits int    `json:"total_credits"`
	Description  string `json:"description"`
	Department   string `json:"department"`
}

// DepartmentRecord is the canonical extracted department entity, keyed by Prefix.
type DepartmentRecord struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Prefix      string   `json:"prefix"`
	Description string   `json:"description"`
	Programs    []string `json:"programs"`
	Courses     []string `json:"courses"`
}

// CrawledPage is a raw catalog page as stored by the crawler.
type CrawledPage struct {
	URL      string `json:"url"`
	Content  string `json:"content"`
	SourceID string `json:"source_id"`
}
