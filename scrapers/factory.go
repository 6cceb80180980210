package scrapers

import (
	"fmt"

	"github.com/raushankrgupta/shoe-price-tracker/config"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/ccs"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/tactics"
)

// NewScrapers builds every registered scraper from cfg. The order is the
// order batches are combined in: Tactics first, then CCS.
func NewScrapers(cfg *config.Config) ([]Scraper, error) {
	opts := base.DefaultBrowserOptions()
	opts.Headless = cfg.Headless
	opts.WindowWidth = cfg.WindowWidth
	opts.WindowHeight = cfg.WindowHeight

	ports := base.NewPortManager(cfg.SeleniumBasePort, cfg.SeleniumPortRange)
	renderer, err := base.NewRenderer(cfg.RenderBackend, opts, cfg.ChromeDriverPath, ports)
	if err != nil {
		return nil, err
	}

	policy, err := ccs.ParsePairingPolicy(cfg.CCSPairing)
	if err != nil {
		return nil, err
	}

	return []Scraper{
		tactics.NewTacticsScraper(cfg.TacticsURL, base.NewBaseScraper(cfg.HTTPTimeout)),
		ccs.NewCCSScraper(cfg.CCSURL, renderer, policy, cfg.RenderTimeout),
	}, nil
}

// GetScraper builds a fresh set of scrapers and returns the one registered
// for a name or URL. Long-lived callers should build once with NewScrapers
// and use Find, so every lookup shares one ChromeDriver port pool.
func GetScraper(cfg *config.Config, target string) (Scraper, error) {
	all, err := NewScrapers(cfg)
	if err != nil {
		return nil, err
	}
	return Find(all, target)
}

// Find returns the first scraper in all that handles target
func Find(all []Scraper, target string) (Scraper, error) {
	for _, s := range all {
		if s.CanScrape(target) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no scraper found for %q", target)
}
