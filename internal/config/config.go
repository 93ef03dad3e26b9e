package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type PostgresConfig struct {
	DSN string `toml:"dsn"`
}

type CrawlerConfig struct {
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Concurrency    int    `toml:"concurrency"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

// LimitsConfig carries store column bounds and pipeline sizing knobs.
type LimitsConfig struct {
	CourseDescriptionMax     int `toml:"course_description_max"`
	ProgramDescriptionMax    int `toml:"program_description_max"`
	ProgramNameMax           int `toml:"program_name_max"`
	DepartmentDescriptionMax int `toml:"department_description_max"`
	BatchSize                int `toml:"batch_size"`
	MaxChainDepth            int `toml:"max_chain_depth"`
	MaxCreditsPerTerm        int `toml:"max_credits_per_term"`
	MaxTerms                 int `toml:"max_terms"`
}

// RequirementsConfig holds the graduation thresholds checked by progress analysis.
type RequirementsConfig struct {
	TotalCredits         int `toml:"total_credits"`
	UpperDivisionCredits int `toml:"upper_division_credits"`
	Disciplines          int `toml:"disciplines"`
}

type CatalogConfig struct {
	University string `toml:"university"`
	SourceID   string `toml:"source_id"`
}

type Config struct {
	Neo4j        Neo4jConfig        `toml:"neo4j"`
	Postgres     PostgresConfig     `toml:"postgres"`
	Crawler      CrawlerConfig      `toml:"crawler"`
	LLM          LLMConfig          `toml:"llm"`
	Limits       LimitsConfig       `toml:"limits"`
	Requirements RequirementsConfig `toml:"requirements"`
	Catalog      CatalogConfig      `toml:"catalog"`
}

// Default returns the configuration used when no file overrides a value.
// The truncation bounds match the relational store's column limits.
func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{URI: "bolt://localhost:7687", User: "neo4j"},
		Crawler: CrawlerConfig{
			UserAgent:      "compass-catalog-crawler/1.0",
			TimeoutSeconds: 30,
			Concurrency:    8,
		},
		Limits: LimitsConfig{
			CourseDescriptionMax:     1000,
			ProgramDescriptionMax:    1000,
			ProgramNameMax:           500,
			DepartmentDescriptionMax: 500,
			BatchSize:                100,
			MaxChainDepth:            10,
			MaxCreditsPerTerm:        15,
			MaxTerms:                 8,
		},
		Requirements: RequirementsConfig{
			TotalCredits:         120,
			UpperDivisionCredits: 40,
			Disciplines:          3,
		},
		Catalog: CatalogConfig{
			University: "Utah Tech University",
			SourceID:   "catalog.utahtech.edu",
		},
	}
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("NEO4J_URI"); v != "" {
		c.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		c.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		c.Neo4j.Password = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
