package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Config controls how Chrome is launched.
type Config struct {
	ProxyURL string
	Headless bool
}

// Browser wraps a launched rod.Browser and its launcher process.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	proxyURL string
}

// New launches Chrome and connects to it.
func New(cfg Config) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true)

	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		browser:  b,
		launcher: l,
		proxyURL: cfg.ProxyURL,
	}, nil
}

// ProxyURL returns the proxy the browser was launched with, if any.
func (b *Browser) ProxyURL() string {
	return b.proxyURL
}

// NewTab opens a stealth page. Every crawl of a run shares the one tab.
func (b *Browser) NewTab() (*Tab, error) {
	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Tab{page: page}, nil
}

// Close closes the browser and kills the launcher process. The process is
// killed even when closing the browser fails.
func (b *Browser) Close() error {
	closeBrowser := func() error { return nil }
	if b.browser != nil {
		closeBrowser = b.browser.Close
	}
	kill := func() {}
	if b.launcher != nil {
		kill = b.launcher.Kill
	}
	return shutdown(closeBrowser, kill)
}

func shutdown(closeBrowser func() error, kill func()) error {
	defer kill()
	if err := closeBrowser(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}
