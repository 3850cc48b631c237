package jobpost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingPage = `<html><body>
	<nav>Jobs | About | Login</nav>
	<div class="job-description">
		<h1>Senior Go Engineer</h1>
		<p>  Build resilient services in Go and Kubernetes.  </p>

		<p>5+ years of backend experience.</p>
	</div>
	<form class="application-form">Upload your resume</form>
	<footer>Equal opportunity employer</footer>
</body></html>`

func TestFetch_ExtractsPostingText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "ResumeBuilder")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingPage))
	}))
	defer server.Close()

	posting, err := NewFetcher(server.Client()).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, BoardGeneric, posting.Board)
	assert.Equal(t, "Senior Go Engineer\nBuild resilient services in Go and Kubernetes.\n5+ years of backend experience.", posting.Text)
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), server.URL)
	var postErr *Error
	require.ErrorAs(t, err, &postErr)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestFetch_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><nav>Menu</nav></body></html>"))
	}))
	defer server.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), server.URL)
	assert.ErrorContains(t, err, "no readable text")
}

func TestFetch_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ftp://example.com/job", "file:///etc/passwd", "https://"} {
		_, err := NewFetcher(nil).Fetch(context.Background(), raw)
		assert.ErrorContains(t, err, "invalid URL", raw)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingPage))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(nil).Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url  string
		want Board
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://jobs.lever.co/acme/abc", BoardLever},
		{"https://acme.wd5.myworkdayjobs.com/careers/job/1", BoardWorkday},
		{"https://jobs.ashbyhq.com/acme/1", BoardAshby},
		{"https://notgreenhouse.io.example.com/job", BoardGeneric},
		{"https://acme.com/careers/1", BoardGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DetectBoard(u))
		})
	}
}

func TestExtractText_BoardSelectors(t *testing.T) {
	html := `<html><body>
		<div class="posting-page"><h2>Platform Engineer</h2><div class="posting-apply">Apply now</div></div>
		<main>Other openings</main>
	</body></html>`

	text, err := ExtractText(html, BoardLever)
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", text)

	text, err = ExtractText(html, BoardGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Other openings", text)
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := ExtractText("<html><body><p>Only a paragraph</p><script>var x = 1;</script></body></html>", BoardGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Only a paragraph", text)
}

func TestCleanLines(t *testing.T) {
	assert.Equal(t, "a\nb", cleanLines("  a  \n\n\t\n b"))
	assert.Empty(t, cleanLines(strings.Repeat("\n", 3)))
}
