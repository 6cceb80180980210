package base

import (
	"context"
	"fmt"
	"log"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeDPRenderer renders pages in a chromedp-managed Chrome process.
type ChromeDPRenderer struct {
	Options BrowserOptions
}

// AllocatorOptions maps BrowserOptions onto chromedp allocator flags.
func (r *ChromeDPRenderer) AllocatorOptions() []chromedp.ExecAllocatorOption {
	o := r.Options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("disable-gpu", o.DisableGPU),
		chromedp.Flag("no-sandbox", o.NoSandbox),
		chromedp.Flag("start-maximized", o.StartMaximized),
		chromedp.Flag("enable-automation", o.EnableAutomation),
		chromedp.Flag("disable-infobars", o.DisableInfobars),
		chromedp.Flag("disable-dev-shm-usage", o.DisableDevShm),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if o.WindowWidth > 0 && o.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(o.WindowWidth, o.WindowHeight))
	}
	return opts
}

// Render navigates to url and returns the outer HTML of the document. The
// browser is cancelled before Render returns.
func (r *ChromeDPRenderer) Render(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.AllocatorOptions()...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	headers := map[string]interface{}{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
	if err := chromedp.Run(taskCtx, network.Enable(), network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
		return "", fmt.Errorf("chromedp header error: %w", err)
	}

	log.Printf("[ChromeDP] Navigating to %s\n", url)
	var htmlContent string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp navigation error: %w", err)
	}
	return htmlContent, nil
}
