package crawler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/logger"
)

// FetchResult is one fetched page. A failed fetch carries Error instead of
// Text; the pipeline treats it as a page with no extractable content.
type FetchResult struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

// Fetcher supplies raw page text given a URL. How pages are discovered or
// rendered is not this package's concern.
type Fetcher interface {
	Fetch(ctx context.Context, url string) FetchResult
	FetchMany(ctx context.Context, urls []string) []FetchResult
}

// HTTPFetcher fetches pages over plain HTTP and strips markup down to text.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	concurrency int
	log         *logger.Logger
}

func NewHTTPFetcher(cfg config.CrawlerConfig, log *logger.Logger) *HTTPFetcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		userAgent:   cfg.UserAgent,
		concurrency: concurrency,
		log:         log.With("component", "crawler"),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) FetchResult {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{URL: url, Error: err.Error()}
	}
	if f.userAgent != "" {
		request.Header.Set("User-Agent", f.userAgent)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return FetchResult{URL: url, Error: err.Error()}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return FetchResult{URL: url, Error: fmt.Sprintf("unexpected status %d", response.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return FetchResult{URL: url, Error: err.Error()}
	}

	return FetchResult{URL: url, Success: true, Text: ExtractText(doc)}
}

// FetchMany fetches pages with bounded concurrency, preserving input order
// in the results.
func (f *HTTPFetcher) FetchMany(ctx context.Context, urls []string) []FetchResult {
	results := make([]FetchResult, len(urls))
	sem := make(chan struct{}, f.concurrency)

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = f.Fetch(ctx, url)
			if !results[i].Success {
				f.log.Warn("fetch failed", "url", url, "error", results[i].Error)
			}
		}(i, url)
	}
	wg.Wait()

	return results
}

// ExtractText flattens a parsed document to whitespace-normalized text,
// dropping script, style and navigation chrome first.
func ExtractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer").Remove()

	var b strings.Builder
	doc.Find("body").Each(func(_ int, selection *goquery.Selection) {
		b.WriteString(selection.Text())
	})

	lines := strings.Split(b.String(), "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
