package tactics

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
)

const (
	SourceLabel = "Tactics.com"
	modelSuffix = "Skate Shoes"
)

// TacticsScraper reads tactics.com, which serves its grid as static HTML.
type TacticsScraper struct {
	*base.BaseScraper
	URL string
}

func NewTacticsScraper(url string, b *base.BaseScraper) *TacticsScraper {
	return &TacticsScraper{BaseScraper: b, URL: url}
}

func (s *TacticsScraper) Name() string {
	return "tactics"
}

func (s *TacticsScraper) CanScrape(target string) bool {
	return strings.EqualFold(target, s.Name()) || strings.Contains(target, "tactics.com")
}

func (s *TacticsScraper) Scrape(ctx context.Context) (*models.ScrapeResult, error) {
	page, err := s.FetchStatic(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	listings, err := Parse(page)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.URL, err)
	}

	return &models.ScrapeResult{
		Source:   SourceLabel,
		URL:      s.URL,
		Page:     page,
		Listings: listings,
	}, nil
}

// Parse extracts and normalizes listings from the static page.
func Parse(page []byte) ([]models.Listing, error) {
	raw, err := Extract(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	listings := make([]models.Listing, 0, len(raw))
	for _, p := range raw {
		listings = append(listings, Normalize(p))
	}
	return listings, nil
}

// Normalize strips the category suffix from the model and labels the source.
func Normalize(p RawProduct) models.Listing {
	return models.Listing{
		Brand:  p.Brand,
		Model:  base.TruncateAt(p.Model, modelSuffix),
		Price:  p.Price,
		Source: SourceLabel,
	}
}
