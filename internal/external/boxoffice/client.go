// Package boxoffice scrapes weekly gross figures from the revenue
// provider's chart pages. It is the ingestion side's only window to the
// outside world; scoring never talks to it.
package boxoffice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/reellords/studio-league/backend/pkg/httputil"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// Client fetches and parses the provider's weekly chart
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a box-office client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ChartEntry is one movie's row on the weekly chart
type ChartEntry struct {
	Title          string
	Slug           string // provider's stable identifier for the movie
	DomesticGross  int64  // whole dollars
	WorldwideGross int64  // whole dollars
}

// FetchWeeklyChart retrieves the chart for the week starting at weekStart
func (c *Client) FetchWeeklyChart(ctx context.Context, weekStart time.Time) ([]ChartEntry, error) {
	fullURL := fmt.Sprintf("%s/weekly/%s", c.baseURL, weekStart.Format("2006-01-02"))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart page: %w", err)
	}

	entries := parseChart(doc)

	c.logger.WithFields(map[string]interface{}{
		"week_start": weekStart.Format("2006-01-02"),
		"entries":    len(entries),
	}).Debug("Fetched weekly chart")

	return entries, nil
}

// parseChart extracts chart rows from the document. Rows missing a title
// link or a parseable gross are skipped; a partial chart is still useful.
func parseChart(doc *goquery.Document) []ChartEntry {
	var entries []ChartEntry

	doc.Find("table.chart tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td.title a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		slug := slugFromHref(href)
		if title == "" || slug == "" {
			return
		}

		domestic, okDom := parseGross(row.Find("td.domestic").First().Text())
		worldwide, okWw := parseGross(row.Find("td.worldwide").First().Text())
		if !okDom && !okWw {
			return
		}

		entries = append(entries, ChartEntry{
			Title:          title,
			Slug:           slug,
			DomesticGross:  domestic,
			WorldwideGross: worldwide,
		})
	})

	return entries
}

// slugFromHref extracts the movie slug from a chart link like
// /movies/the-heist-2024
func slugFromHref(href string) string {
	href = strings.TrimRight(href, "/")
	idx := strings.LastIndex(href, "/")
	if idx < 0 {
		return ""
	}
	return href[idx+1:]
}

// parseGross converts "$12,345,678" to 12345678
func parseGross(text string) (int64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
