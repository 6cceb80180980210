package base

import (
	"context"
	"fmt"
)

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Renderer drives a headless browser to a URL and returns the rendered markup.
// Implementations release the browser session before returning.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserOptions are the Chrome switches used for a rendered fetch.
type BrowserOptions struct {
	Headless         bool
	WindowWidth      int
	WindowHeight     int
	DisableGPU       bool
	NoSandbox        bool
	StartMaximized   bool
	EnableAutomation bool
	DisableInfobars  bool
	DisableDevShm    bool
}

// DefaultBrowserOptions matches the switches the CCS scrape has always used.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Headless:         true,
		WindowWidth:      1400,
		WindowHeight:     1500,
		DisableGPU:       true,
		NoSandbox:        true,
		StartMaximized:   true,
		EnableAutomation: true,
		DisableInfobars:  true,
		DisableDevShm:    true,
	}
}

// Args renders the options as Chrome command line arguments, in the order
// chromedriver receives them.
func (o BrowserOptions) Args() []string {
	var args []string
	if o.Headless {
		args = append(args, "--headless")
	}
	if o.WindowWidth > 0 && o.WindowHeight > 0 {
		args = append(args, fmt.Sprintf("window-size=%d,%d", o.WindowWidth, o.WindowHeight))
	}
	if o.DisableGPU {
		args = append(args, "--disable-gpu")
	}
	if o.NoSandbox {
		args = append(args, "--no-sandbox")
	}
	if o.StartMaximized {
		args = append(args, "start-maximized")
	}
	if o.EnableAutomation {
		args = append(args, "enable-automation")
	}
	if o.DisableInfobars {
		args = append(args, "--disable-infobars")
	}
	if o.DisableDevShm {
		args = append(args, "--disable-dev-shm-usage")
	}
	return args
}

// NewRenderer picks the rendered-fetch backend by name.
func NewRenderer(backend string, opts BrowserOptions, driverPath string, ports *PortManager) (Renderer, error) {
	switch backend {
	case "selenium":
		return &SeleniumRenderer{Options: opts, DriverPath: driverPath, Ports: ports}, nil
	case "chromedp":
		return &ChromeDPRenderer{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q", backend)
	}
}
