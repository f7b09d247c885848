package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelscope/reelscope/internal/domain"
)

func TestScrapeGoldenFile(t *testing.T) {
	goldenData, err := os.ReadFile("testdata/reel.json")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scrape", r.URL.Path)
		assert.Equal(t, "https://example.com/reel/Cxy12ab/", r.URL.Query().Get("url"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(goldenData)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	post, err := client.Scrape(context.Background(), "https://example.com/reel/Cxy12ab/")
	require.NoError(t, err)

	assert.Equal(t, "Cxy12ab", post.Shortcode)
	assert.Equal(t, "wanderer", post.Username)
	assert.Equal(t, 500, post.Followers)
	assert.Equal(t, 100, post.LikeCount)
	assert.Equal(t, 19, post.TakenAt.UTC().Hour())
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "ana", post.Comments[0].Username)
}

func TestScrapeNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login failed", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Scrape(context.Background(), "https://example.com/reel/x/")
	assert.ErrorIs(t, err, ErrScrapeFailed)
}

func TestScrapeMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Scrape(context.Background(), "https://example.com/reel/x/")
	assert.ErrorIs(t, err, ErrScrapeFailed)
}

func TestScrapeEmptyURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1"})
	_, err := client.Scrape(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
