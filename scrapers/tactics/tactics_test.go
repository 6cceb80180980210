package tactics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
	"github.com/stretchr/testify/require"
)

const gridPage = `<html><body>
<ul id="browse-grid">
  <li class="browse-grid-item">
    <a href="/product/vans-half-cab">
      <span class="browse-grid-item-brand">Vans</span>
      <span class="browse-grid-item-name">Vans Skate Half Cab Skate Shoes</span>
      <span class="browse-grid-item-color">Black/White</span>
      <span class="browse-grid-item-price">$74.95</span>
    </a>
  </li>
  <li class="browse-grid-item">
    <div class="placeholder">sponsored</div>
  </li>
  <li class="browse-grid-item">
    <a href="/product/nike-sb-dunk">
      <span class="browse-grid-item-name">Nike SB Dunk Low Pro</span>
    </a>
  </li>
</ul>
</body></html>`

func TestExtract(t *testing.T) {
	raw, err := Extract(strings.NewReader(gridPage))
	require.NoError(t, err)
	require.Equal(t, []RawProduct{
		{Brand: "Vans", Model: "Skate Half Cab Skate Shoes  $74.95", Price: "$74.95"},
		{Brand: "N/A", Model: "N/A", Price: "N/A"},
		{Brand: "N/A", Model: "Nike SB Dunk Low Pro", Price: "N/A"},
	}, raw)
}

func TestExtractTrimsBrandAndPrice(t *testing.T) {
	page := `<div id="browse-grid"><div>
		<a href="/p"><span class="browse-grid-item-brand">
			Vans
		</span> Sk8-Hi Skate Shoes <span class="browse-grid-item-price"> $79.95
		</span></a></div></div>`

	raw, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	require.Equal(t, "Vans", raw[0].Brand)
	require.Equal(t, "$79.95", raw[0].Price)
	require.Equal(t, "Sk8-Hi Skate Shoes $79.95", raw[0].Model)
}

func TestExtractMissingGrid(t *testing.T) {
	_, err := Extract(strings.NewReader(`<html><body><p>Access denied</p></body></html>`))
	require.ErrorIs(t, err, ErrGridNotFound)
}

func TestExtractEmptyGrid(t *testing.T) {
	raw, err := Extract(strings.NewReader(`<div id="browse-grid">   </div>`))
	require.NoError(t, err)
	require.Empty(t, raw)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in     RawProduct
		expect models.Listing
	}{
		{
			in:     RawProduct{Brand: "Vans", Model: "Half Cab Skate Shoes", Price: "$74.95"},
			expect: models.Listing{Brand: "Vans", Model: "Half Cab ", Price: "$74.95", Source: "Tactics.com"},
		},
		{
			in:     RawProduct{Brand: "Nike", Model: "SB Dunk Low Pro", Price: "$1,110.00"},
			expect: models.Listing{Brand: "Nike", Model: "SB Dunk Low Pro", Price: "$1,110.00", Source: "Tactics.com"},
		},
		{
			in:     RawProduct{Brand: "N/A", Model: "N/A", Price: "N/A"},
			expect: models.Listing{Brand: "N/A", Model: "N/A", Price: "N/A", Source: "Tactics.com"},
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Normalize(test.in))
	}
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gridPage))
	}))
	defer srv.Close()

	s := NewTacticsScraper(srv.URL+"/mens-shoes", base.NewBaseScraper(5*time.Second))
	res, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Tactics.com", res.Source)
	require.Len(t, res.Listings, 3)
	require.Equal(t, "Skate Half Cab ", res.Listings[0].Model)
	require.Equal(t, []byte(gridPage), res.Page)
}

func TestScrapeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewTacticsScraper(srv.URL, base.NewBaseScraper(5*time.Second))
	_, err := s.Scrape(context.Background())

	var statusErr *base.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}
