package base

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrowserArgs(t *testing.T) {
	require.Equal(t, []string{
		"--headless",
		"window-size=1400,1500",
		"--disable-gpu",
		"--no-sandbox",
		"start-maximized",
		"enable-automation",
		"--disable-infobars",
		"--disable-dev-shm-usage",
	}, DefaultBrowserOptions().Args())

	require.Empty(t, BrowserOptions{}.Args())
}

func TestNewRenderer(t *testing.T) {
	ports := NewPortManager(4444, 1)

	r, err := NewRenderer("selenium", DefaultBrowserOptions(), "/usr/local/bin/chromedriver", ports)
	require.NoError(t, err)
	require.IsType(t, &SeleniumRenderer{}, r)

	r, err = NewRenderer("chromedp", DefaultBrowserOptions(), "", nil)
	require.NoError(t, err)
	require.IsType(t, &ChromeDPRenderer{}, r)

	_, err = NewRenderer("lynx", DefaultBrowserOptions(), "", nil)
	require.Error(t, err)
}

func TestPortManager(t *testing.T) {
	pm := NewPortManager(5000, 2)

	first, err := pm.GetPort()
	require.NoError(t, err)
	require.Equal(t, 5000, first)

	second, err := pm.GetPort()
	require.NoError(t, err)
	require.Equal(t, 5001, second)

	_, err = pm.GetPort()
	require.Error(t, err)

	pm.ReleasePort(first)
	pm.ReleasePort(9999)
	again, err := pm.GetPort()
	require.NoError(t, err)
	require.Equal(t, 5000, again)
}

func TestFetchStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("User-Agent") == "" {
				http.Error(w, "no user agent", http.StatusBadRequest)
				return
			}
			w.Write([]byte("<html>shoes</html>"))
		default:
			http.Error(w, "gone", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	b := NewBaseScraper(5 * time.Second)

	body, err := b.FetchStatic(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, "<html>shoes</html>", string(body))

	_, err = b.FetchStatic(context.Background(), srv.URL+"/down")
	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestFetchStaticConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewBaseScraper(time.Second).FetchStatic(context.Background(), url)
	require.Error(t, err)
}

func TestTruncateAt(t *testing.T) {
	cases := []struct {
		in, sep, expect string
	}{
		{in: "SB Chron - Black", sep: "-", expect: "SB Chron "},
		{in: "Old Skool Shoes", sep: "Shoes", expect: "Old Skool "},
		{in: "Old Skool", sep: "-", expect: "Old Skool"},
		{in: "", sep: "-", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, TruncateAt(test.in, test.sep))
	}
}

func TestElement(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`
		<div id="grid">
			text between
			<div class="item"><a href="/x"> <span class="brand">Vans</span>
				Old Skool <!-- note --> <span class="color">Black</span></a></div>
			<div class="item"><span class="brand">Nike</span></div>
		</div>`))
	require.NoError(t, err)

	require.Nil(t, doc.FindByID("missing"))
	grid := doc.FindByID("grid")
	require.NotNil(t, grid)

	children := grid.ElementChildren()
	require.Len(t, children, 2)

	anchor := children[0].FindFirst("a", "")
	require.NotNil(t, anchor)
	require.Equal(t, []string{"Vans", "Old Skool", "Black"}, anchor.StrippedStrings())
	require.Equal(t, "Vans Old Skool Black", anchor.StrippedText())

	require.Equal(t, "Nike", children[1].FindFirst("span", "brand").Text())
	require.Nil(t, children[1].FindFirst("a", ""))
	require.Nil(t, children[1].FindFirst("span", "color"))
	require.Empty(t, children[1].FindFirst("span", "brand").ElementChildren())
}
