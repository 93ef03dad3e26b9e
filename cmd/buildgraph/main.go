package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/crawler"
	"github.com/redrock-labs/compass/internal/driver"
	"github.com/redrock-labs/compass/internal/llm"
	"github.com/redrock-labs/compass/internal/logger"
	"github.com/redrock-labs/compass/internal/store"
)

// buildgraph runs the catalog pipeline once and exits: optionally crawl a
// seed list, then extract, build the graph, and mirror to the relational
// store.
func main() {
	seedsPath := flag.String("seeds", "", "path to a file of catalog URLs to crawl before building")
	cfgPath := flag.String("config", "config/config.toml", "path to the TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", *cfgPath, err)
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

	if *seedsPath != "" {
		if err := crawlSeeds(ctx, *seedsPath, cfg.Crawler, st, appLog); err != nil {
			appLog.Fatal("crawl failed", "seeds", *seedsPath, "error", err)
		}
	}

	engine := core.NewEngine(graphDriver, st, llmClient, embedder, cfg.Catalog.University, appLog)
	run, err := engine.BuildGraph(ctx)
	if err != nil {
		appLog.Fatal("graph build failed", "error", err)
	}

	appLog.Info("graph build complete",
		"run_id", run.RunID,
		"pages", run.Pages,
		"courses", run.Courses,
		"programs", run.Programs,
		"departments", run.Departments,
		"errors", len(run.Errors))
	for _, msg := range run.Errors {
		appLog.Warn("pipeline error", "error", msg)
	}
}

func crawlSeeds(ctx context.Context, path string, cfg config.CrawlerConfig, st *store.Store, appLog *logger.Logger) error {
	urls, err := readSeeds(path)
	if err != nil {
		return err
	}
	appLog.Info("crawling seed urls", "count", len(urls))

	fetcher := crawler.NewHTTPFetcher(cfg, appLog)
	results := fetcher.FetchMany(ctx, urls)

	var pages []model.CrawledPage
	for _, result := range results {
		if !result.Success {
			continue
		}
		pages = append(pages, model.CrawledPage{URL: result.URL, Content: result.Text})
	}

	_, err = st.SaveCrawledPages(ctx, pages)
	return err
}

func readSeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
