package planner

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redrock-labs/compass/internal/driver"
)

// MockGraph serves course lookups from a keyed map and everything else from
// a fixed result, recording each query for assertions.
type MockGraph struct {
	Courses map[string]*neo4j.Record
	Fixed   neo4j.EagerResult
	Queries []string
	Params  []map[string]interface{}
	Err     error
}

func (m *MockGraph) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}

	if query == driver.GetCourseWithPrereqsQuery {
		code, _ := params["code"].(string)
		if record, ok := m.Courses[code]; ok {
			return neo4j.EagerResult{Records: []*neo4j.Record{record}}, nil
		}
		return neo4j.EagerResult{}, nil
	}

	return m.Fixed, nil
}

func (m *MockGraph) BuildSchema(ctx context.Context) error {
	return nil
}

func (m *MockGraph) Close(ctx context.Context) error {
	return nil
}

func courseRecord(code, title string, credits int64, level, department string, prereqs ...string) *neo4j.Record {
	prereqValues := make([]interface{}, 0, len(prereqs))
	for _, p := range prereqs {
		prereqValues = append(prereqValues, p)
	}
	return &neo4j.Record{
		Keys:   []string{"code", "title", "credits", "level", "department", "description", "prerequisites"},
		Values: []interface{}{code, title, credits, level, department, "", prereqValues},
	}
}
