package newswire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func serveNewsPage(t *testing.T, page string) *Scraper {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(page))
		},
	))
	t.Cleanup(server.Close)

	return NewScraper(Options{
		Url:     server.URL,
		Timeout: time.Second * 2,
	})
}

func TestTopHeadline(t *testing.T) {
	scraper := serveNewsPage(t, `<html><body>
		<h1>Football</h1>
		<div><h2>
			Transfer   deadline day:
			who is going where?
		</h2></div>
		<h2>Second story</h2>
	</body></html>`)

	headline, err := scraper.TopHeadline(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Transfer deadline day: who is going where?", headline)
}

func TestTopHeadlineMissing(t *testing.T) {
	scraper := serveNewsPage(t, `<html><body><h1>Football</h1></body></html>`)

	_, err := scraper.TopHeadline(context.Background())
	require.ErrorContains(t, err, "no headline")
}

func TestTopHeadlineErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
	))
	t.Cleanup(server.Close)

	scraper := NewScraper(Options{
		Url:     server.URL,
		Timeout: time.Second * 2,
	})
	_, err := scraper.TopHeadline(context.Background())
	require.ErrorContains(t, err, "status")
}
