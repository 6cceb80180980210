package scrapers

import (
	"context"

	"github.com/raushankrgupta/shoe-price-tracker/models"
)

// Scraper defines the interface for all shoe listing scrapers
type Scraper interface {
	// Name is the short name used on the command line and in logs
	Name() string
	// CanScrape checks if the scraper handles the given name or URL
	CanScrape(target string) bool
	// Scrape fetches the listing page and returns normalized listings
	Scrape(ctx context.Context) (*models.ScrapeResult, error)
}
