package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/llm"
)

// Summarizer produces short department overviews from the course titles
// extracted for that department. Optional enrichment: the pipeline runs
// without it when no LLM is configured.
type Summarizer struct {
	LLM llm.LLMClient
}

func NewSummarizer(llmClient llm.LLMClient) *Summarizer {
	return &Summarizer{LLM: llmClient}
}

const maxTitlesPerPrompt = 40

// SummarizeDepartment generates a one-paragraph overview of a department
// from its course offerings.
func (s *Summarizer) SummarizeDepartment(ctx context.Context, dept model.DepartmentRecord, courses []model.CourseRecord) (string, error) {
	if len(courses) == 0 {
		return dept.Description, nil
	}

	var titles []string
	for _, course := range courses {
		titles = append(titles, fmt.Sprintf("- %s: %s", course.Code, course.Title))
		if len(titles) >= maxTitlesPerPrompt {
			break
		}
	}

	prompt := fmt.Sprintf(
		"Write a single-paragraph overview of the %s department based on its course offerings. Plain text only.\n\nCourses:\n%s",
		dept.Name, strings.Join(titles, "\n"))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to summarize department %s: %w", dept.Prefix, err)
	}

	return strings.TrimSpace(response), nil
}
