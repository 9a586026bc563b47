package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/dedup"
	"github.com/rowanhq/headliner/internal/fetcher"
)

// pager is the subset of a rendered page the pagination loop needs: read
// the current markup, click the load-more affordance, and let the page
// settle after an expansion.
type pager interface {
	HTML() (string, error)

	// ClickLoadMore finds and clicks the load-more element. It returns an
	// error when the element is absent or unclickable.
	ClickLoadMore(selector string) error

	// Settle waits for the page to quiet down after a click, then holds for
	// the configured expansion wait. A stability timeout is reported but
	// non-fatal.
	Settle(wait time.Duration) error
}

// PaginatedExtractor drives a rendered page through its "load more"
// affordance, re-running the rule extractor after each click and
// accumulating only headlines not yet seen. Clicking stops when the button
// disappears, a click fails, the click budget runs out, or a pass yields
// nothing new.
type PaginatedExtractor struct {
	inner   *RuleExtractor
	browser *fetcher.BrowserFetcher
	src     config.Source
	cfg     config.Browser
	logger  *slog.Logger
}

// NewPaginatedExtractor wraps a rule extractor with browser pagination.
func NewPaginatedExtractor(src config.Source, bcfg config.Browser, browser *fetcher.BrowserFetcher, logger *slog.Logger) *PaginatedExtractor {
	return &PaginatedExtractor{
		inner:   NewRuleExtractor(src, logger),
		browser: browser,
		src:     src,
		cfg:     bcfg,
		logger:  logger.With("component", "paginated_extractor", "source", src.Name),
	}
}

// Collect opens the listing page in the browser and returns the union of
// headlines across all loaded pages, in first-seen order.
func (p *PaginatedExtractor) Collect(ctx context.Context, url string) ([]string, error) {
	page, err := p.browser.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	return p.collect(rodPager{page: page})
}

// collect runs the expansion loop against an already-open page.
func (p *PaginatedExtractor) collect(page pager) ([]string, error) {
	headlines, err := p.parse(page)
	if err != nil {
		return nil, err
	}
	seen := dedup.NewSet()
	for _, h := range headlines {
		seen.Add(h)
	}

	for click := 0; click < p.cfg.MaxLoadMore; click++ {
		if err := page.ClickLoadMore(p.src.LoadMoreSelector); err != nil {
			p.logger.Debug("load more affordance gone", "clicks", click, "error", err)
			break
		}
		if err := page.Settle(p.cfg.LoadMoreWait); err != nil {
			p.logger.Debug("page stability timeout after click", "error", err)
		}

		more, err := p.parse(page)
		if err != nil {
			p.logger.Warn("re-parse after click failed", "clicks", click, "error", err)
			break
		}

		added := 0
		for _, h := range more {
			if seen.Add(h) {
				headlines = append(headlines, h)
				added++
			}
		}
		p.logger.Debug("pagination pass", "click", click+1, "new_headlines", added)
		if added == 0 {
			break
		}
	}

	return headlines, nil
}

func (p *PaginatedExtractor) parse(page pager) ([]string, error) {
	markup, err := page.HTML()
	if err != nil {
		return nil, err
	}
	return p.inner.Parse([]byte(markup))
}

// rodPager adapts a live rod page to the pager interface.
type rodPager struct {
	page *rod.Page
}

func (r rodPager) HTML() (string, error) {
	return r.page.HTML()
}

func (r rodPager) ClickLoadMore(selector string) error {
	button, err := r.page.Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return err
	}
	return button.Click(proto.InputMouseButtonLeft, 1)
}

func (r rodPager) Settle(wait time.Duration) error {
	err := r.page.Timeout(5 * time.Second).WaitStable(300 * time.Millisecond)
	time.Sleep(wait)
	return err
}
