package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/types"
)

// BrowserFetcher implements Fetcher using a headless browser via Rod.
// It exists for the one source whose listing page hides headlines behind a
// "load more" affordance; everything else goes through HTTPFetcher.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.Config
	logger  *slog.Logger
}

// NewBrowserFetcher launches a headless Chromium and connects to it.
// If no local browser binary can be found it returns ErrBrowserUnavailable,
// which callers treat as a degradation signal, not a failure.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	bin, has := launcher.LookPath()
	if !has {
		return nil, types.ErrBrowserUnavailable
	}

	launchURL, err := launcher.New().
		Bin(bin).
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w (%w)", err, types.ErrBrowserUnavailable)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf := &BrowserFetcher{
		browser: browser,
		cfg:     cfg,
		logger:  logger.With("component", "browser_fetcher"),
	}
	bf.logger.Info("browser fetcher ready")
	return bf, nil
}

// Open navigates a fresh stealth page to the URL and waits for it to settle.
// The caller owns the returned page and must Close it.
func (bf *BrowserFetcher) Open(ctx context.Context, url string) (*rod.Page, error) {
	page, err := stealth.Page(bf.browser)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("stealth page: %w", err), Retryable: true}
	}
	page = page.Context(ctx)

	err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: bf.cfg.Fetcher.UserAgent,
	})
	if err != nil {
		bf.logger.Warn("failed to set user agent", "error", err)
	}

	timeout := bf.cfg.Fetcher.RequestTimeout
	if err := page.Timeout(timeout).Navigate(url); err != nil {
		_ = page.Close()
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}
	if err := page.Timeout(timeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	return page, nil
}

// Fetch navigates to a URL and returns the rendered page markup.
func (bf *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	page, err := bf.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}

	bf.logger.Debug("browser fetch complete",
		"url", url,
		"size", len(html),
		"duration", time.Since(start),
	)
	return []byte(html), nil
}

// Close shuts down the browser and releases resources.
func (bf *BrowserFetcher) Close() error {
	if bf.browser != nil {
		return bf.browser.Close()
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}
