package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, 1000, cfg.Limits.CourseDescriptionMax)
	assert.Equal(t, 500, cfg.Limits.ProgramNameMax)
	assert.Equal(t, 500, cfg.Limits.DepartmentDescriptionMax)
	assert.Equal(t, 120, cfg.Requirements.TotalCredits)
	assert.Equal(t, 40, cfg.Requirements.UpperDivisionCredits)
	assert.Equal(t, 3, cfg.Requirements.Disciplines)
	assert.Equal(t, "Utah Tech University", cfg.Catalog.University)
}

// Values absent from the file keep their defaults.
func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[neo4j]
uri = "bolt://graph:7687"

[limits]
batch_size = 50
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, 50, cfg.Limits.BatchSize)
	assert.Equal(t, 1000, cfg.Limits.CourseDescriptionMax)
	assert.Equal(t, 120, cfg.Requirements.TotalCredits)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://env:7687")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "bolt://env:7687", cfg.Neo4j.URI)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
}
