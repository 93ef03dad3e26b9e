package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/redrock-labs/compass/internal/core/model"
)

// Catalog pages mix course listings with navigation, footers and prose, so a
// structural regex match alone is not enough; every candidate passes a
// validity filter before it becomes a record.

var (
	coursePattern = regexp.MustCompile(`\b([A-Z]{2,4})\s+(\d{4})\.\s+([^.\n]+)\.\s*(?:(\d+)\s*(?:Hours?|Credits?))?`)

	nextCoursePattern    = regexp.MustCompile(`\n[A-Z]{2,4}\s+\d{4}\.`)
	sectionHeaderPattern = regexp.MustCompile(`\n[A-Z][A-Z\s]+:`)
	tripleNewlinePattern = regexp.MustCompile(`\n\n\n`)
	whitespacePattern    = regexp.MustCompile(`\s+`)

	programPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Bachelor of [^,\n|]+)`),
		regexp.MustCompile(`(?i)(Master of [^,\n|]+)`),
		regexp.MustCompile(`(?i)([A-Z][^,\n|]+ Certificate)`),
		regexp.MustCompile(`(?i)([A-Z][^,\n|]+ Minor)`),
	}

	urlSlugPattern = regexp.MustCompile(`/([^/]+)/?$`)
	pagePrefixes   = regexp.MustCompile(`([A-Z]{2,4})\s+\d{4}`)
)

// Prefixes that structurally match the course pattern but never name a course:
// semester names, short common words, conjunctions and OCR artifacts.
var invalidPrefixes = map[string]struct{}{
	"FALL": {}, "SPRI": {}, "SUMM": {}, "WINT": {},
	"IN": {}, "ON": {}, "AT": {}, "TO": {}, "FOR": {}, "THE": {},
	"NTIL": {}, "CHIN": {}, "YEAR": {}, "PAGE": {},
	"AND": {}, "OR": {}, "BUT": {}, "NOT": {}, "WITH": {},
}

var facilityKeywords = []string{"stadium", "center", "building", "facility", "hall", "library"}

const descriptionWindow = 2000

// ExtractCourses scans page text for course listings and returns accepted
// records keyed by course code. Deterministic and free of I/O.
func ExtractCourses(content string) map[string]model.CourseRecord {
	courses := make(map[string]model.CourseRecord)

	for _, match := range coursePattern.FindAllStringSubmatchIndex(content, -1) {
		prefix := strings.ToUpper(content[match[2]:match[3]])
		number := content[match[4]:match[5]]
		title := strings.TrimSpace(content[match[6]:match[7]])

		if !isValidCourse(prefix, number, title) {
			continue
		}

		credits := 3
		if match[8] != -1 {
			if parsed, err := strconv.Atoi(content[match[8]:match[9]]); err == nil {
				credits = parsed
			}
		}

		numeric, _ := strconv.Atoi(number)
		code := prefix + " " + number

		courses[code] = model.CourseRecord{
			Code:             code,
			Prefix:           prefix,
			Number:           number,
			Title:            title,
			Credits:          credits,
			Level:            model.LevelForNumber(numeric),
			Description:      extractDescription(content, match[1]),
			Corequisites:     []string{},
			OfferedSemesters: []string{"Fall", "Spring"},
		}
	}

	return courses
}

func isValidCourse(prefix, number, title string) bool {
	if _, bad := invalidPrefixes[prefix]; bad {
		return false
	}

	// Calendar years read as course numbers.
	if len(number) == 4 && (strings.HasPrefix(number, "19") || strings.HasPrefix(number, "20")) {
		return false
	}

	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 5 || isAllDigits(trimmed) {
		return false
	}

	// Building and facility names come from navigation and footer text.
	lower := strings.ToLower(trimmed)
	for _, keyword := range facilityKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// extractDescription takes a bounded window of text following a course heading,
// cut at the next course heading, section header or triple newline.
func extractDescription(content string, start int) string {
	end := start + descriptionWindow
	if end > len(content) {
		end = len(content)
	}
	snippet := content[start:end]

	cut := len(snippet)
	for _, pattern := range []*regexp.Regexp{nextCoursePattern, sectionHeaderPattern, tripleNewlinePattern} {
		if loc := pattern.FindStringIndex(snippet); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}

	description := strings.TrimSpace(snippet[:cut])
	description = whitespacePattern.ReplaceAllString(description, " ")
	description = strings.ReplaceAll(description, "**", "")
	return description
}

// ExtractPrograms scans page text for degree program names keyed by name.
func ExtractPrograms(content string) map[string]model.ProgramRecord {
	programs := make(map[string]model.ProgramRecord)

	for _, pattern := range programPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			name := strings.TrimSpace(match[1])
			if !isValidProgramName(name) {
				continue
			}

			programType, level, ok := classifyProgram(name)
			if !ok {
				continue
			}

			programs[name] = model.ProgramRecord{
				Name:         name,
				Code:         strings.ToUpper(strings.ReplaceAll(name, " ", "_")),
				Type:         programType,
				Level:        level,
				TotalCredits: 120,
				Description:  name + " program",
			}
		}
	}

	return programs
}

func isValidProgramName(name string) bool {
	if len(name) < 10 {
		return false
	}
	lower := strings.ToLower(name)
	if lower == "degree" || lower == "certificate" {
		return false
	}
	// A pipe indicates a mis-captured navigation fragment.
	if strings.Contains(name, "|") {
		return false
	}
	return true
}

func classifyProgram(name string) (programType, level string, ok bool) {
	switch {
	case strings.Contains(name, "Bachelor"):
		return model.ProgramBachelor, model.ProgramLevelUndergraduate, true
	case strings.Contains(name, "Master"):
		return model.ProgramMaster, model.ProgramLevelGraduate, true
	case strings.Contains(name, "Certificate"):
		return model.ProgramCertificate, model.ProgramLevelUndergraduate, true
	case strings.Contains(name, "Minor"):
		return model.ProgramMinor, model.ProgramLevelUndergraduate, true
	default:
		return "", "", false
	}
}

// ExtractDepartments derives a department record from the page URL slug and
// the dominant course prefix on the page, keyed by department name.
func ExtractDepartments(content, pageURL string) map[string]model.DepartmentRecord {
	departments := make(map[string]model.DepartmentRecord)

	slugMatch := urlSlugPattern.FindStringSubmatch(strings.TrimSuffix(pageURL, "/"))
	if slugMatch == nil {
		return departments
	}
	slug := slugMatch[1]
	name := titleCase(strings.ReplaceAll(slug, "-", " "))

	departments[name] = model.DepartmentRecord{
		Name:        name,
		Code:        strings.ToUpper(slug),
		Prefix:      dominantPrefix(content),
		Description: name + " Department",
		Programs:    []string{},
		Courses:     []string{},
	}

	return departments
}

// DepartmentFromURL derives a best-effort department label from the trailing
// URL path segment.
func DepartmentFromURL(pageURL string) string {
	slugMatch := urlSlugPattern.FindStringSubmatch(strings.TrimSuffix(pageURL, "/"))
	if slugMatch == nil {
		return ""
	}
	return titleCase(strings.ReplaceAll(slugMatch[1], "-", " "))
}

// dominantPrefix picks the most frequent course prefix on the page,
// ties broken by first occurrence.
func dominantPrefix(content string) string {
	counts := make(map[string]int)
	var order []string

	for _, match := range pagePrefixes.FindAllStringSubmatch(content, -1) {
		prefix := match[1]
		if _, seen := counts[prefix]; !seen {
			order = append(order, prefix)
		}
		counts[prefix]++
	}

	best := "UNKN"
	bestCount := 0
	for _, prefix := range order {
		if counts[prefix] > bestCount {
			best = prefix
			bestCount = counts[prefix]
		}
	}
	return best
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
