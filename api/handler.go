package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
	"github.com/raushankrgupta/shoe-price-tracker/utils"
)

// ScraperLookup resolves a source name or URL to its scraper.
type ScraperLookup func(target string) (scrapers.Scraper, error)

// Handler previews scrapes over HTTP. Nothing it does is persisted.
type Handler struct {
	Lookup ScraperLookup
}

func NewHandler(lookup ScraperLookup) *Handler {
	return &Handler{Lookup: lookup}
}

// ScrapeHandler scrapes one source and returns its normalized listings
func (h *Handler) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Scrape API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	source := strings.TrimSpace(r.URL.Query().Get("source"))
	if source == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'source' query parameter", http.StatusBadRequest)
		return
	}

	scraper, err := h.Lookup(source)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Error finding scraper: %v", err), http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Scraping source: %s", scraper.Name())
	result, err := scraper.Scrape(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Scraping failed: %v", err), http.StatusBadGateway)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Scraping successful: %d listings", len(result.Listings))
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
