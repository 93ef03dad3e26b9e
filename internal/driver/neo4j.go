package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redrock-labs/compass/internal/logger"
)

type Neo4jDriver struct {
	Driver neo4j.DriverWithContext
	log    *logger.Logger
}

func NewNeo4jDriver(uri, username, password string, log *logger.Logger) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Info("connected to graph store", "uri", uri)
	return &Neo4jDriver{Driver: driver, log: log.With("component", "neo4j")}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BuildSchema creates the uniqueness constraints and secondary indexes. Every
// statement is IF NOT EXISTS; a failure is logged and the rest still run, so
// re-running schema creation is safe.
func (d *Neo4jDriver) BuildSchema(ctx context.Context) error {
	queries := []string{
		"CREATE CONSTRAINT university_name IF NOT EXISTS FOR (u:University) REQUIRE u.name IS UNIQUE",
		"CREATE CONSTRAINT department_prefix IF NOT EXISTS FOR (d:Department) REQUIRE d.prefix IS UNIQUE",
		"CREATE CONSTRAINT course_code IF NOT EXISTS FOR (c:Course) REQUIRE c.code IS UNIQUE",
		"CREATE CONSTRAINT program_name IF NOT EXISTS FOR (p:Program) REQUIRE p.name IS UNIQUE",

		"CREATE INDEX course_prefix IF NOT EXISTS FOR (c:Course) ON (c.prefix)",
		"CREATE INDEX course_number IF NOT EXISTS FOR (c:Course) ON (c.number)",
		"CREATE INDEX course_level IF NOT EXISTS FOR (c:Course) ON (c.level)",
		"CREATE INDEX program_type IF NOT EXISTS FOR (p:Program) ON (p.type)",
		"CREATE INDEX program_level IF NOT EXISTS FOR (p:Program) ON (p.level)",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.log.Warn("schema statement failed", "statement", q, "error", err)
		}
	}

	return nil
}
