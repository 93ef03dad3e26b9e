package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core"
	"github.com/redrock-labs/compass/internal/core/iap"
	"github.com/redrock-labs/compass/internal/core/planner"
	"github.com/redrock-labs/compass/internal/driver"
	"github.com/redrock-labs/compass/internal/llm"
	"github.com/redrock-labs/compass/internal/logger"
	"github.com/redrock-labs/compass/internal/server"
	"github.com/redrock-labs/compass/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	appLog, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx := context.Background()

	graphDriver, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, appLog)
	if err != nil {
		appLog.Fatal("failed to connect to graph database", "uri", cfg.Neo4j.URI, "error", err)
	}
	defer graphDriver.Close(ctx)

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		appLog.Fatal("failed to connect to relational database", "error", err)
	}
	defer pool.Close()

	llmClient, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		appLog.Fatal("failed to initialize LLM client", "provider", cfg.LLM.Provider, "error", err)
	}

	st := store.New(pool, cfg.Limits, cfg.Catalog.SourceID, appLog)
	engine := core.NewEngine(graphDriver, st, llmClient, embedder, cfg.Catalog.University, appLog)
	pl := planner.NewPlanner(graphDriver, cfg.Requirements)
	iapManager := iap.NewManager(cfg.Requirements, pl)

	srv := server.NewServer(engine, pl, iapManager, cfg.Limits, appLog)
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	appLog.Info("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		appLog.Fatal("server exited", "error", err)
	}
}
