// Package jobpost imports the text of a job posting from a URL so it can be analyzed
// against a resume.
package jobpost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single posting download
const DefaultTimeout = 30 * time.Second

// MaxPageBytes caps how much of a page is read
const MaxPageBytes = 4 << 20

const userAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"

// Posting is the extracted text of a job posting
type Posting struct {
	URL   string
	Board Board
	Text  string
}

// Error reports a posting that could not be downloaded or read
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job posting %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job posting %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher downloads job postings
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. A nil client gets one with DefaultTimeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL and extracts the posting text using the selectors of the
// detected job board.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Posting, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	board := DetectBoard(parsed)
	text, err := ExtractText(string(body), board)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to parse page", Cause: err}
	}
	if text == "" {
		return nil, &Error{URL: rawURL, Message: "page has no readable text"}
	}

	return &Posting{URL: rawURL, Board: board, Text: text}, nil
}

// ExtractText strips page chrome and application forms and returns the text of the
// first content region the board's selectors find, falling back to the body.
func ExtractText(html string, board Board) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(strings.Join(board.noiseSelectors(), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range board.contentSelectors() {
		if found := doc.Find(selector); found.Length() > 0 {
			content = found.First()
			break
		}
	}

	return cleanLines(content.Text()), nil
}

// cleanLines trims every line and drops blank ones
func cleanLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
