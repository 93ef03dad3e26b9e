package planner

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
)

var testRequirements = config.RequirementsConfig{
	TotalCredits:         120,
	UpperDivisionCredits: 40,
	Disciplines:          3,
}

func csCatalog() map[string]*neo4j.Record {
	return map[string]*neo4j.Record{
		"CS 1400": courseRecord("CS 1400", "Fundamentals of Programming", 4, model.LevelLowerDivision, "CS"),
		"CS 1410": courseRecord("CS 1410", "Object Oriented Programming", 4, model.LevelLowerDivision, "CS", "CS 1400"),
		"CS 2420": courseRecord("CS 2420", "Data Structures", 4, model.LevelLowerDivision, "CS", "CS 1410"),
		"CS 3150": courseRecord("CS 3150", "Computer Networks", 3, model.LevelUpperDivision, "CS", "CS 2420"),
	}
}

func TestValidateSequenceReportsViolations(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	report, err := p.ValidateSequence(context.Background(), []string{"CS 2420", "CS 1400", "CS 1410"})

	assert.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Len(t, report.Violations, 1)
	assert.Equal(t, "CS 2420", report.Violations[0].Course)
	assert.Equal(t, []string{"CS 1410"}, report.Violations[0].MissingPrerequisites)
}

func TestValidateSequenceAcceptsValidOrder(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	report, err := p.ValidateSequence(context.Background(), []string{"CS 1400", "CS 1410", "CS 2420", "CS 3150"})

	assert.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 4, report.Statistics.TotalCourses)
	assert.Equal(t, 15, report.Statistics.TotalCredits)
	assert.Equal(t, 3, report.Statistics.UpperDivisionCredits)
	assert.Equal(t, 1, report.Statistics.DisciplineCount)
}

// A code missing from the graph contributes nothing and is never a violation.
func TestValidateSequenceIgnoresUnknownCourses(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	report, err := p.ValidateSequence(context.Background(), []string{"CS 1400", "BOGUS 9999"})

	assert.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 1, report.Statistics.TotalCourses)
}

func TestRecommendSequenceOrdersByPrerequisites(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	plan, err := p.RecommendSequence(context.Background(), []string{"CS 2420", "CS 1400", "CS 1410"}, 15, 8)

	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"CS 1400", "CS 1410", "CS 2420"}}, plan.RecommendedSequence)
	assert.Equal(t, 12, plan.TotalCredits)
}

func TestRecommendSequenceRespectsCreditCap(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	plan, err := p.RecommendSequence(context.Background(), []string{"CS 2420", "CS 1400", "CS 1410"}, 8, 8)

	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"CS 1400", "CS 1410"}, {"CS 2420"}}, plan.RecommendedSequence)
}

func TestRecommendSequenceTruncatesToMaxTerms(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	plan, err := p.RecommendSequence(context.Background(), []string{"CS 2420", "CS 1400", "CS 1410"}, 4, 2)

	assert.NoError(t, err)
	assert.Len(t, plan.RecommendedSequence, 2)
}

func TestRecommendSequenceDeduplicatesTargets(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	plan, err := p.RecommendSequence(context.Background(), []string{"CS 1400", "CS 1400", "CS 1410"}, 15, 8)

	assert.NoError(t, err)
	assert.Equal(t, []string{"CS 1400", "CS 1410"}, plan.Courses)
	assert.Equal(t, [][]string{{"CS 1400", "CS 1410"}}, plan.RecommendedSequence)
	assert.Equal(t, 8, plan.TotalCredits)
}

func TestPrerequisiteChain(t *testing.T) {
	mock := &MockGraph{
		Fixed: neo4j.EagerResult{Records: []*neo4j.Record{
			{
				Keys: []string{"course_path", "credit_path", "depth"},
				Values: []interface{}{
					[]interface{}{"CS 1400", "CS 1410", "CS 2420"},
					[]interface{}{int64(4), int64(4), int64(4)},
					int64(2),
				},
			},
		}},
	}
	p := NewPlanner(mock, testRequirements)

	paths, err := p.PrerequisiteChain(context.Background(), "CS 2420", 5)

	assert.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, "CS 2420", paths[0].TargetCourse)
	assert.Equal(t, []string{"CS 1400", "CS 1410", "CS 2420"}, paths[0].Path)
	assert.Equal(t, 12, paths[0].TotalCredits)
	assert.Equal(t, 1, paths[0].SemestersNeeded)
}

func TestPrerequisiteChainClampsDepth(t *testing.T) {
	mock := &MockGraph{}
	p := NewPlanner(mock, testRequirements)

	_, err := p.PrerequisiteChain(context.Background(), "CS 2420", 50)

	assert.NoError(t, err)
	assert.Equal(t, 10, mock.Params[0]["max_depth"])
}

func TestFindAlternativesScopesDepartment(t *testing.T) {
	mock := &MockGraph{
		Courses: csCatalog(),
		Fixed: neo4j.EagerResult{Records: []*neo4j.Record{
			courseRecord("CS 2450", "Software Engineering", 4, model.LevelLowerDivision, "CS"),
		}},
	}
	p := NewPlanner(mock, testRequirements)

	alternatives, err := p.FindAlternatives(context.Background(), "CS 2420", true, 5)

	assert.NoError(t, err)
	assert.Len(t, alternatives, 1)
	assert.Equal(t, "CS 2450", alternatives[0].Code)

	last := mock.Params[len(mock.Params)-1]
	assert.Equal(t, "CS", last["prefix"])
}

func TestFindAlternativesAnyDepartment(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	_, err := p.FindAlternatives(context.Background(), "CS 2420", false, 5)

	assert.NoError(t, err)
	last := mock.Params[len(mock.Params)-1]
	assert.Nil(t, last["prefix"])
}

func TestFindAlternativesUnknownCourse(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	alternatives, err := p.FindAlternatives(context.Background(), "BOGUS 9999", false, 5)

	assert.NoError(t, err)
	assert.Nil(t, alternatives)
	// Only the course lookup ran; no alternatives query for a missing course.
	assert.Len(t, mock.Queries, 1)
}

func TestFindCoursesByLevelScopesDepartment(t *testing.T) {
	mock := &MockGraph{
		Fixed: neo4j.EagerResult{Records: []*neo4j.Record{
			courseRecord("CS 3005", "Programming Languages", 3, model.LevelUpperDivision, "CS"),
			courseRecord("CS 3150", "Computer Networks", 3, model.LevelUpperDivision, "CS"),
		}},
	}
	p := NewPlanner(mock, testRequirements)

	courses, err := p.FindCoursesByLevel(context.Background(), model.LevelUpperDivision, "CS", 0)

	assert.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, "CS 3005", courses[0].Code)

	last := mock.Params[len(mock.Params)-1]
	assert.Equal(t, model.LevelUpperDivision, last["level"])
	assert.Equal(t, "CS", last["prefix"])
	// A non-positive limit falls back to the default.
	assert.Equal(t, 50, last["limit"])
}

func TestFindCoursesByLevelAnyDepartment(t *testing.T) {
	mock := &MockGraph{}
	p := NewPlanner(mock, testRequirements)

	courses, err := p.FindCoursesByLevel(context.Background(), model.LevelGraduate, "", 10)

	assert.NoError(t, err)
	assert.Nil(t, courses)
	last := mock.Params[len(mock.Params)-1]
	assert.Nil(t, last["prefix"])
	assert.Equal(t, 10, last["limit"])
}

func TestAnalyzeProgressReadyToGraduate(t *testing.T) {
	mock := &MockGraph{Courses: map[string]*neo4j.Record{
		"CS 4600":   courseRecord("CS 4600", "Senior Project", 45, model.LevelUpperDivision, "CS"),
		"MATH 3400": courseRecord("MATH 3400", "Probability", 40, model.LevelUpperDivision, "MATH"),
		"BIOL 1010": courseRecord("BIOL 1010", "General Biology", 40, model.LevelLowerDivision, "BIOL"),
	}}
	p := NewPlanner(mock, testRequirements)

	report, err := p.AnalyzeProgress(context.Background(), []string{"CS 4600", "MATH 3400", "BIOL 1010"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 125, report.TotalCredits)
	assert.Equal(t, 85, report.UpperDivisionCredits)
	assert.True(t, report.CreditRequirement.Met)
	assert.True(t, report.UpperDivisionReq.Met)
	assert.True(t, report.DisciplineReq.Met)
	assert.True(t, report.ReadyToGraduate)
	assert.Equal(t, 100.0, report.CompletionPercentage)
}

func TestAnalyzeProgressNotReady(t *testing.T) {
	mock := &MockGraph{Courses: map[string]*neo4j.Record{
		"CS 3150":   courseRecord("CS 3150", "Computer Networks", 39, model.LevelUpperDivision, "CS"),
		"MATH 1050": courseRecord("MATH 1050", "College Algebra", 80, model.LevelLowerDivision, "MATH"),
	}}
	p := NewPlanner(mock, testRequirements)

	report, err := p.AnalyzeProgress(context.Background(), []string{"CS 3150", "MATH 1050"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 119, report.TotalCredits)
	assert.False(t, report.CreditRequirement.Met)
	assert.Equal(t, 1, report.CreditRequirement.Remaining)
	assert.False(t, report.UpperDivisionReq.Met)
	assert.False(t, report.DisciplineReq.Met)
	assert.False(t, report.ReadyToGraduate)
}

func TestAnalyzeProgressSplitsRemaining(t *testing.T) {
	mock := &MockGraph{Courses: csCatalog()}
	p := NewPlanner(mock, testRequirements)

	report, err := p.AnalyzeProgress(context.Background(),
		[]string{"CS 1400", "CS 1410"},
		[]string{"CS 1410", "CS 2420", "CS 3150"})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Completed.Courses)
	assert.Equal(t, 8, report.Completed.Credits)
	assert.Equal(t, []string{"CS 2420", "CS 3150"}, report.Remaining.CourseList)
	assert.Equal(t, 7, report.Remaining.Credits)
}

// Credits of zero fall back to the standard three-credit assumption.
func TestCourseFromRecordDefaultCredits(t *testing.T) {
	record := courseRecord("CS 1000", "Computing Careers", 0, model.LevelLowerDivision, "CS")

	course := courseFromRecord(record)

	assert.Equal(t, 3, course.Credits)
}
