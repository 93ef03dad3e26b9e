package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/logger"
)

const listCrawledPages = `SELECT url, content, source_id FROM crawled_pages WHERE source_id = $1 ORDER BY url`

const insertCrawledPage = `INSERT INTO crawled_pages (url, content, source_id) VALUES ($1, $2, $3) ON CONFLICT (url) DO UPDATE SET content = EXCLUDED.content, source_id = EXCLUDED.source_id`

const insertDepartment = `INSERT INTO academic_departments (department_name, prefix, description, source_id) VALUES ($1, $2, $3, $4)`
const insertCourse = `INSERT INTO academic_courses (course_code, title, credits, level, description, prerequisites, prefix, course_number, embedding, source_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
const insertProgram = `INSERT INTO academic_programs (program_name, program_type, level, description, source_id) VALUES ($1, $2, $3, $4, $5)`

// The store API requires a filter predicate even for an unconditional delete,
// hence the tautological not-equal-to-empty comparisons.
const deleteCourses = `DELETE FROM academic_courses WHERE course_code <> ''`
const deletePrograms = `DELETE FROM academic_programs WHERE program_name <> ''`
const deleteDepartments = `DELETE FROM academic_departments WHERE department_name <> ''`

// UpsertCounts reports one mirror write: rows written and duplicates skipped
// by the application-level key check.
type UpsertCounts struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Store mirrors the canonical entity maps into the relational store for text
// and keyword search, and supplies the raw crawled pages on the input side.
type Store struct {
	Pool     *pgxpool.Pool
	Limits   config.LimitsConfig
	SourceID string
	Log      *logger.Logger
}

func New(pool *pgxpool.Pool, limits config.LimitsConfig, sourceID string, log *logger.Logger) *Store {
	return &Store{Pool: pool, Limits: limits, SourceID: sourceID, Log: log.With("component", "store")}
}

// ListCrawledPages returns the raw catalog pages for one source.
func (s *Store) ListCrawledPages(ctx context.Context) ([]model.CrawledPage, error) {
	rows, err := s.Pool.Query(ctx, listCrawledPages, s.SourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawled pages: %w", err)
	}
	defer rows.Close()

	var pages []model.CrawledPage
	for rows.Next() {
		var page model.CrawledPage
		if err := rows.Scan(&page.URL, &page.Content, &page.SourceID); err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pages, nil
}

// SaveCrawledPages upserts raw page snapshots keyed by URL, so a re-crawl
// refreshes content in place.
func (s *Store) SaveCrawledPages(ctx context.Context, pages []model.CrawledPage) (int, error) {
	err := s.sendBatches(ctx, len(pages), func(batch *pgx.Batch, i int) {
		page := pages[i]
		batch.Queue(insertCrawledPage, page.URL, page.Content, s.SourceID)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save crawled pages: %w", err)
	}

	s.Log.Info("saved crawled pages", "pages", len(pages))
	return len(pages), nil
}

// ClearExisting deletes all mirrored entity rows before a full rebuild.
func (s *Store) ClearExisting(ctx context.Context) error {
	for _, sql := range []string{deleteCourses, deletePrograms, deleteDepartments} {
		if _, err := s.Pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to clear existing rows: %w", err)
		}
	}
	return nil
}

func (s *Store) UpsertDepartments(ctx context.Context, departments map[string]model.DepartmentRecord) (UpsertCounts, error) {
	rows, skipped := prepareDepartmentRows(departments, s.Limits, s.SourceID)
	counts := UpsertCounts{Skipped: skipped}

	err := s.sendBatches(ctx, len(rows), func(batch *pgx.Batch, i int) {
		r := rows[i]
		batch.Queue(insertDepartment, r.Name, r.Prefix, r.Description, r.SourceID)
	})
	if err != nil {
		return counts, fmt.Errorf("failed to insert departments: %w", err)
	}

	counts.Inserted = len(rows)
	s.Log.Info("mirrored departments", "inserted", counts.Inserted, "skipped", counts.Skipped)
	return counts, nil
}

func (s *Store) UpsertCourses(ctx context.Context, courses map[string]model.CourseRecord) (UpsertCounts, error) {
	rows, skipped := prepareCourseRows(courses, s.Limits, s.SourceID)
	counts := UpsertCounts{Skipped: skipped}

	err := s.sendBatches(ctx, len(rows), func(batch *pgx.Batch, i int) {
		r := rows[i]
		batch.Queue(insertCourse, r.Code, r.Title, r.Credits, r.Level, r.Description, r.Prerequisites, r.Prefix, r.Number, r.Embedding, r.SourceID)
	})
	if err != nil {
		return counts, fmt.Errorf("failed to insert courses: %w", err)
	}

	counts.Inserted = len(rows)
	s.Log.Info("mirrored courses", "inserted", counts.Inserted, "skipped", counts.Skipped)
	return counts, nil
}

func (s *Store) UpsertPrograms(ctx context.Context, programs map[string]model.ProgramRecord) (UpsertCounts, error) {
	rows, skipped := prepareProgramRows(programs, s.Limits, s.SourceID)
	counts := UpsertCounts{Skipped: skipped}

	err := s.sendBatches(ctx, len(rows), func(batch *pgx.Batch, i int) {
		r := rows[i]
		batch.Queue(insertProgram, r.Name, r.Type, r.Level, r.Description, r.SourceID)
	})
	if err != nil {
		return counts, fmt.Errorf("failed to insert programs: %w", err)
	}

	counts.Inserted = len(rows)
	s.Log.Info("mirrored programs", "inserted", counts.Inserted, "skipped", counts.Skipped)
	return counts, nil
}

// sendBatches queues rows in fixed-size pgx batches to stay under request
// size limits.
func (s *Store) sendBatches(ctx context.Context, total int, queue func(batch *pgx.Batch, i int)) error {
	batchSize := s.Limits.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			queue(batch, i)
		}

		if err := s.Pool.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return nil
}
