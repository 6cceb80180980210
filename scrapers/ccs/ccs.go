package ccs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
)

// CCSScraper reads shop.ccs.com, whose listing data only exists after
// client-side rendering.
type CCSScraper struct {
	URL           string
	Renderer      base.Renderer
	Policy        PairingPolicy
	RenderTimeout time.Duration
}

func NewCCSScraper(url string, renderer base.Renderer, policy PairingPolicy, renderTimeout time.Duration) *CCSScraper {
	return &CCSScraper{
		URL:           url,
		Renderer:      renderer,
		Policy:        policy,
		RenderTimeout: renderTimeout,
	}
}

func (s *CCSScraper) Name() string {
	return "ccs"
}

func (s *CCSScraper) CanScrape(target string) bool {
	return strings.EqualFold(target, s.Name()) || strings.Contains(target, "ccs.com")
}

func (s *CCSScraper) Scrape(ctx context.Context) (*models.ScrapeResult, error) {
	if s.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RenderTimeout)
		defer cancel()
	}

	// The renderer has already released the browser by the time it returns.
	page, err := s.Renderer.Render(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", s.URL, err)
	}

	listings, dropped, err := s.Parse(page)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Printf("[CCS] %d item name/price captures had no partner and were dropped\n", dropped)
	}

	return &models.ScrapeResult{
		Source:   SourceLabel,
		URL:      s.URL,
		Page:     []byte(page),
		Listings: listings,
		Dropped:  dropped,
	}, nil
}

// Parse extracts and normalizes listings from rendered markup.
func (s *CCSScraper) Parse(markup string) ([]models.Listing, int, error) {
	pairs, dropped, err := Extract(markup).Pair(s.Policy)
	if err != nil {
		return nil, dropped, err
	}

	listings := make([]models.Listing, 0, len(pairs))
	for _, p := range pairs {
		listings = append(listings, Normalize(p))
	}
	return listings, dropped, nil
}
