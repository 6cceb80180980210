package base

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumRenderer renders pages through a ChromeDriver session it starts
// and stops on every call.
type SeleniumRenderer struct {
	Options    BrowserOptions
	DriverPath string
	Ports      *PortManager
}

// Render navigates to url and returns the page source once navigation
// completes. The driver and its service are torn down before Render returns,
// on success and on failure.
func (r *SeleniumRenderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	port, err := r.Ports.GetPort()
	if err != nil {
		return "", fmt.Errorf("port error: %w", err)
	}
	defer r.Ports.ReleasePort(port)

	service, err := selenium.NewChromeDriverService(r.DriverPath, port)
	if err != nil {
		return "", fmt.Errorf("error starting Chrome driver service: %w", err)
	}
	defer service.Stop()

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{Args: r.Options.Args()})

	driver, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		return "", fmt.Errorf("error creating WebDriver: %w", err)
	}
	defer func() {
		if err := driver.Quit(); err != nil {
			log.Printf("[Selenium] quit failed: %v\n", err)
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err := driver.SetPageLoadTimeout(time.Until(deadline)); err != nil {
			return "", fmt.Errorf("set page load timeout: %w", err)
		}
	}

	log.Printf("[Selenium] Navigating to %s\n", url)
	if err := driver.Get(url); err != nil {
		return "", fmt.Errorf("navigation error: %w", err)
	}

	html, err := driver.PageSource()
	if err != nil {
		return "", fmt.Errorf("page source error: %w", err)
	}
	return html, nil
}
