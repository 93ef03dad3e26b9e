package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redrock-labs/compass/internal/core/extraction"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/core/prereq"
	"github.com/redrock-labs/compass/internal/core/resolve"
	"github.com/redrock-labs/compass/internal/core/summary"
	"github.com/redrock-labs/compass/internal/driver"
	"github.com/redrock-labs/compass/internal/llm"
	"github.com/redrock-labs/compass/internal/logger"
	"github.com/redrock-labs/compass/internal/store"
)

// RunSummary is the structured result of one full pipeline run. Partial
// failures are reported here; the run does not abort on a failed stage.
type RunSummary struct {
	RunID                string             `json:"run_id"`
	Pages                int                `json:"pages"`
	Courses              int                `json:"courses"`
	Programs             int                `json:"programs"`
	Departments          int                `json:"departments"`
	DuplicateDepartments int                `json:"duplicate_departments"`
	Graph                *PopulateResult    `json:"graph,omitempty"`
	MirroredCourses      store.UpsertCounts `json:"mirrored_courses"`
	MirroredPrograms     store.UpsertCounts `json:"mirrored_programs"`
	MirroredDepartments  store.UpsertCounts `json:"mirrored_departments"`
	Errors               []string           `json:"errors,omitempty"`
}

// Engine runs the extract -> resolve -> build -> mirror pipeline. One run
// owns its catalog exclusively; concurrent runs against the same target
// stores are not supported.
type Engine struct {
	Builder    *Builder
	Store      *store.Store
	LLM        llm.LLMClient
	Embedder   llm.EmbedderClient
	Summarizer *summary.Summarizer
	Log        *logger.Logger
}

func NewEngine(d driver.GraphDriver, st *store.Store, llmClient llm.LLMClient, embedder llm.EmbedderClient, university string, log *logger.Logger) *Engine {
	e := &Engine{
		Builder:  NewBuilder(d, university, log),
		Store:    st,
		LLM:      llmClient,
		Embedder: embedder,
		Log:      log.With("component", "engine"),
	}
	if llmClient != nil {
		e.Summarizer = summary.NewSummarizer(llmClient)
	}
	return e
}

// BuildGraph runs the full pipeline over the stored catalog snapshot.
func (e *Engine) BuildGraph(ctx context.Context) (*RunSummary, error) {
	run := &RunSummary{RunID: uuid.New().String()}
	log := e.Log.With("run_id", run.RunID)

	pages, err := e.Store.ListCrawledPages(ctx)
	if err != nil {
		return run, fmt.Errorf("failed to load crawled pages: %w", err)
	}
	run.Pages = len(pages)
	log.Info("processing crawled pages", "pages", len(pages))

	catalog := e.Extract(pages)
	run.Courses = len(catalog.Courses)
	run.Programs = len(catalog.Programs)
	run.Departments = len(catalog.Departments)
	run.DuplicateDepartments = catalog.DuplicateDepartments
	log.Info("extraction complete",
		"courses", run.Courses, "programs", run.Programs, "departments", run.Departments)

	e.enrich(ctx, catalog, run)

	if err := e.Builder.BuildSchema(ctx); err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("schema: %v", err))
	}

	graphResult, err := e.Builder.Populate(ctx, catalog)
	run.Graph = graphResult
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("graph populate: %v", err))
	}

	e.mirror(ctx, catalog, run)

	return run, nil
}

// Extract parses every page and resolves the candidates into one canonical
// catalog. Pure CPU work; nothing is written until the populate phase.
func (e *Engine) Extract(pages []model.CrawledPage) *resolve.Catalog {
	catalog := resolve.NewCatalog()

	for _, page := range pages {
		courses := extraction.ExtractCourses(page.Content)
		for code, course := range courses {
			course.Prerequisites = prereq.ExtractPrerequisites(course.Description)
			courses[code] = course
		}
		catalog.MergeCourses(courses)

		programs := extraction.ExtractPrograms(page.Content)
		if dept := extraction.DepartmentFromURL(page.URL); dept != "" {
			for name, program := range programs {
				program.Department = dept
				programs[name] = program
			}
		}
		catalog.MergePrograms(programs)

		catalog.MergeDepartments(extraction.ExtractDepartments(page.Content, page.URL))
	}

	return catalog
}

// enrich adds optional LLM-derived data: department overviews and course
// embeddings. Failures degrade to the un-enriched record.
func (e *Engine) enrich(ctx context.Context, catalog *resolve.Catalog, run *RunSummary) {
	if e.Summarizer != nil {
		for name, dept := range catalog.Departments {
			var courses []model.CourseRecord
			for _, course := range catalog.Courses {
				if course.Prefix == dept.Prefix {
					courses = append(courses, course)
				}
			}
			overview, err := e.Summarizer.SummarizeDepartment(ctx, dept, courses)
			if err != nil {
				run.Errors = append(run.Errors, fmt.Sprintf("summarize %s: %v", dept.Prefix, err))
				continue
			}
			dept.Description = overview
			catalog.Departments[name] = dept
		}
	}

	if e.Embedder != nil {
		for code, course := range catalog.Courses {
			vec, err := e.Embedder.Embed(ctx, course.Title+". "+course.Description)
			if err != nil {
				run.Errors = append(run.Errors, fmt.Sprintf("embed %s: %v", code, err))
				continue
			}
			course.Embedding = vec
			catalog.Courses[code] = course
		}
	}
}

// mirror projects the catalog into the relational store. The mirror is
// rebuilt from scratch each run; a failed entity batch is recorded and the
// remaining batches still run.
func (e *Engine) mirror(ctx context.Context, catalog *resolve.Catalog, run *RunSummary) {
	if err := e.Store.ClearExisting(ctx); err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("clear existing: %v", err))
		return
	}

	counts, err := e.Store.UpsertDepartments(ctx, catalog.Departments)
	run.MirroredDepartments = counts
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("mirror departments: %v", err))
	}

	counts, err = e.Store.UpsertCourses(ctx, catalog.Courses)
	run.MirroredCourses = counts
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("mirror courses: %v", err))
	}

	counts, err = e.Store.UpsertPrograms(ctx, catalog.Programs)
	run.MirroredPrograms = counts
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("mirror programs: %v", err))
	}
}
