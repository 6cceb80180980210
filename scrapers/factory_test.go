package scrapers

import (
	"testing"
	"time"

	"github.com/raushankrgupta/shoe-price-tracker/config"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/ccs"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		CCSURL:            config.DefaultCCSURL,
		TacticsURL:        config.DefaultTacticsURL,
		RenderBackend:     "chromedp",
		SeleniumBasePort:  4444,
		SeleniumPortRange: 4,
		Headless:          true,
		WindowWidth:       1400,
		WindowHeight:      1500,
		HTTPTimeout:       time.Second,
		CCSPairing:        "truncate",
	}
}

func TestNewScrapersOrder(t *testing.T) {
	all, err := NewScrapers(testConfig())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "tactics", all[0].Name())
	require.Equal(t, "ccs", all[1].Name())
}

func TestGetScraper(t *testing.T) {
	cfg := testConfig()

	s, err := GetScraper(cfg, "https://shop.ccs.com/collections/shoes")
	require.NoError(t, err)
	require.Equal(t, "ccs", s.Name())

	s, err = GetScraper(cfg, "tactics")
	require.NoError(t, err)
	require.Equal(t, "tactics", s.Name())

	_, err = GetScraper(cfg, "zappos")
	require.Error(t, err)
}

func TestNewScrapersBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RenderBackend = "lynx"
	_, err := NewScrapers(cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.CCSPairing = "pad"
	_, err = NewScrapers(cfg)
	require.Error(t, err)
}

func TestFindSharesPortPool(t *testing.T) {
	cfg := testConfig()
	cfg.RenderBackend = "selenium"
	all, err := NewScrapers(cfg)
	require.NoError(t, err)

	first, err := Find(all, "ccs")
	require.NoError(t, err)
	second, err := Find(all, "ccs")
	require.NoError(t, err)
	require.Same(t, first, second)

	portsOf := func(s Scraper) *base.PortManager {
		renderer, ok := s.(*ccs.CCSScraper).Renderer.(*base.SeleniumRenderer)
		require.True(t, ok)
		return renderer.Ports
	}
	require.Same(t, portsOf(first), portsOf(second))

	p1, err := portsOf(first).GetPort()
	require.NoError(t, err)
	p2, err := portsOf(second).GetPort()
	require.NoError(t, err)
	require.Equal(t, 4444, p1)
	require.Equal(t, 4445, p2)

	_, err = Find(all, "zappos")
	require.Error(t, err)
}
