package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
)

type stubScraper struct {
	result *models.ScrapeResult
	err    error
}

func (s *stubScraper) Name() string                 { return "tactics" }
func (s *stubScraper) CanScrape(target string) bool { return target == "tactics" }
func (s *stubScraper) Scrape(ctx context.Context) (*models.ScrapeResult, error) {
	return s.result, s.err
}

func lookupFor(s scrapers.Scraper) ScraperLookup {
	return func(target string) (scrapers.Scraper, error) {
		if s.CanScrape(target) {
			return s, nil
		}
		return nil, errors.New("no scraper found")
	}
}

func TestScrapeHandler(t *testing.T) {
	stub := &stubScraper{result: &models.ScrapeResult{
		Source: "Tactics.com",
		URL:    "https://www.tactics.com/mens-shoes",
		Page:   []byte("<html>secret</html>"),
		Listings: []models.Listing{
			{Brand: "Vans", Model: "Half Cab ", Price: "$74.95", Source: "Tactics.com"},
		},
	}}
	h := NewHandler(lookupFor(stub))

	rec := httptest.NewRecorder()
	h.ScrapeHandler(rec, httptest.NewRequest(http.MethodGet, "/scrape?source=tactics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "secret")

	var got models.ScrapeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, stub.result.Listings, got.Listings)
}

func TestScrapeHandlerErrors(t *testing.T) {
	stub := &stubScraper{err: errors.New("status 503")}
	h := NewHandler(lookupFor(stub))

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"missing source", http.MethodGet, "/scrape", http.StatusBadRequest},
		{"unknown source", http.MethodGet, "/scrape?source=zappos", http.StatusBadRequest},
		{"upstream failure", http.MethodGet, "/scrape?source=tactics", http.StatusBadGateway},
		{"wrong method", http.MethodPost, "/scrape?source=tactics", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ScrapeHandler(rec, httptest.NewRequest(tt.method, tt.target, nil))
			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHealthzHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil).HealthzHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
