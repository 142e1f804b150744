package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"profilelens/internal/config"
	"profilelens/internal/domain/models"
	"profilelens/pkg/logger"
)

func newTestScraper(apiURL string) *ScraperClient {
	return NewScraperClient(config.ScraperConfig{
		APIURL:  apiURL,
		APIKey:  "test-key",
		WaitFor: 3 * time.Second,
	}, logger.Nop())
}

func TestScrapeSuccessEnveloped(t *testing.T) {
	var gotReq scrapeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding scrape request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"markdown": "## janedoe\n1.2M followers",
				"links":    []string{"https://a.example", "https://b.example"},
			},
		})
	}))
	defer srv.Close()

	got := newTestScraper(srv.URL).Scrape(context.Background(), "https://instagram.com/janedoe")

	want := models.ScrapeResult{
		MarkdownContent: "## janedoe\n1.2M followers",
		OutboundLinks:   []string{"https://a.example", "https://b.example"},
		Succeeded:       true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scrape result mismatch (-want +got):\n%s", diff)
	}

	// The request must ask for full-page markdown plus links with a render wait
	wantReq := scrapeRequest{
		URL:             "https://instagram.com/janedoe",
		Formats:         []string{"markdown", "links"},
		OnlyMainContent: false,
		WaitFor:         3000,
	}
	if diff := cmp.Diff(wantReq, gotReq); diff != "" {
		t.Errorf("scrape request mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeSuccessFlatPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"markdown": "flat markdown",
			"links":    []string{"https://a.example"},
		})
	}))
	defer srv.Close()

	got := newTestScraper(srv.URL).Scrape(context.Background(), "https://example.com/u")

	if !got.Succeeded {
		t.Error("expected success for flat payload shape")
	}
	if got.MarkdownContent != "flat markdown" {
		t.Errorf("markdown = %q", got.MarkdownContent)
	}
	if len(got.OutboundLinks) != 1 {
		t.Errorf("links = %v", got.OutboundLinks)
	}
}

func TestScrapeSalvagesContentOnServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"data": map[string]any{
				"markdown": "partial content before the renderer gave up",
			},
		})
	}))
	defer srv.Close()

	got := newTestScraper(srv.URL).Scrape(context.Background(), "https://example.com/u")

	if got.Succeeded {
		t.Error("application-level failure must not be reported as success")
	}
	if got.MarkdownContent != "partial content before the renderer gave up" {
		t.Errorf("expected salvaged markdown, got %q", got.MarkdownContent)
	}
}

func TestScrapeDegradesOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := newTestScraper(srv.URL).Scrape(context.Background(), "https://example.com/u")

	if got.Succeeded || got.MarkdownContent != "" {
		t.Errorf("expected empty failed result, got %+v", got)
	}
}

func TestScrapeDegradesOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	got := newTestScraper(srv.URL).Scrape(context.Background(), "https://example.com/u")

	want := models.ScrapeResult{Succeeded: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transport failure must degrade to empty result (-want +got):\n%s", diff)
	}
}
