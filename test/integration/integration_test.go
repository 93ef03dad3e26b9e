//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/core/planner"
	"github.com/redrock-labs/compass/internal/core/resolve"
	"github.com/redrock-labs/compass/internal/driver"
	"github.com/redrock-labs/compass/internal/logger"
)

// TestGraphRoundTrip populates a small catalog into a live graph database
// and runs the planning queries against it.
func TestGraphRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("Skipping integration test: NEO4J_URI not set")
	}

	log := logger.Nop()
	d, err := driver.NewNeo4jDriver(uri, os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"), log)
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()
	require.NoError(t, d.BuildSchema(ctx))

	catalog := resolve.NewCatalog()
	catalog.MergeDepartments(map[string]model.DepartmentRecord{
		"Computer Science": {Name: "Computer Science", Code: "COMPUTER-SCIENCE", Prefix: "CS"},
	})
	catalog.MergeCourses(map[string]model.CourseRecord{
		"CS 1400": {Code: "CS 1400", Prefix: "CS", Number: "1400", Title: "Fundamentals of Programming",
			Credits: 4, Level: model.LevelLowerDivision},
		"CS 1410": {Code: "CS 1410", Prefix: "CS", Number: "1410", Title: "Object Oriented Programming",
			Credits: 4, Level: model.LevelLowerDivision, Prerequisites: []string{"CS 1400"}},
		"CS 2420": {Code: "CS 2420", Prefix: "CS", Number: "2420", Title: "Data Structures",
			Credits: 4, Level: model.LevelLowerDivision, Prerequisites: []string{"CS 1410"}},
	})

	builder := core.NewBuilder(d, "Utah Tech University", log)
	result, err := builder.Populate(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Courses)
	assert.Equal(t, 2, result.Relationships.Prerequisites)
	assert.Empty(t, result.Errors)

	// Populate again: MERGE semantics mean the second pass changes nothing.
	again, err := builder.Populate(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, result.Courses, again.Courses)

	p := planner.NewPlanner(d, config.Default().Requirements)

	paths, err := p.PrerequisiteChain(ctx, "CS 2420", 10)
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.Equal(t, []string{"CS 1400", "CS 1410", "CS 2420"}, paths[0].Path)

	report, err := p.ValidateSequence(ctx, []string{"CS 2420", "CS 1400", "CS 1410"})
	require.NoError(t, err)
	assert.False(t, report.Valid)
}
