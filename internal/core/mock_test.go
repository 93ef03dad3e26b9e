package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redrock-labs/compass/internal/driver"
)

// MockDriver records every query and its params. The university hierarchy
// query returns a canned created count; everything else returns empty.
type MockDriver struct {
	Queries      []string
	Params       []map[string]interface{}
	CreatedCount int64
	Err          error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}

	if query == driver.LinkUniversityDepartmentsQuery {
		return neo4j.EagerResult{Records: []*neo4j.Record{
			{Keys: []string{"created"}, Values: []interface{}{m.CreatedCount}},
		}}, nil
	}

	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildSchema(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) countQuery(query string) int {
	count := 0
	for _, executed := range m.Queries {
		if executed == query {
			count++
		}
	}
	return count
}
