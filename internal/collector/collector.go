// Package collector orchestrates one collection run: fetch both homepages,
// extract and validate headlines, balance the batch, merge into the
// integrated dataset, and append the run report.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/dataset"
	"github.com/rowanhq/headliner/internal/extract"
	"github.com/rowanhq/headliner/internal/fetcher"
	"github.com/rowanhq/headliner/internal/merge"
	"github.com/rowanhq/headliner/internal/report"
	"github.com/rowanhq/headliner/internal/sampler"
	"github.com/rowanhq/headliner/internal/types"
)

// Collector runs the daily pipeline. Collection-side failures (fetch,
// parse, load) degrade to empty inputs; persistence-side failures (dataset
// replace, report append) abort the run.
type Collector struct {
	cfg        *config.Config
	http       fetcher.Fetcher
	browser    *fetcher.BrowserFetcher // nil: single-page collection only
	sampler    *sampler.Sampler
	original   dataset.Store
	integrated dataset.Store
	ledger     *report.Ledger
	logger     *slog.Logger
	now        func() time.Time
}

// New wires a collector from configuration. A missing local browser is a
// degradation, not a failure: paginated sources fall back to their first
// page over plain HTTP.
func New(cfg *config.Config, logger *slog.Logger) (*Collector, error) {
	integrated, err := dataset.OpenIntegrated(cfg.Dataset, logger)
	if err != nil {
		return nil, fmt.Errorf("open integrated dataset: %w", err)
	}

	var browser *fetcher.BrowserFetcher
	if cfg.Browser.Enabled {
		browser, err = fetcher.NewBrowserFetcher(cfg, logger)
		if err != nil {
			if !errors.Is(err, types.ErrBrowserUnavailable) {
				logger.Warn("browser startup failed", "error", err)
			}
			logger.Warn("browser unavailable, paginated sources degrade to a single page")
			browser = nil
		}
	}

	return &Collector{
		cfg:        cfg,
		http:       fetcher.NewHTTPFetcher(cfg, logger),
		browser:    browser,
		sampler:    sampler.New(rand.New(rand.NewSource(time.Now().UnixNano())), logger),
		original:   dataset.OpenOriginal(cfg.Dataset, logger),
		integrated: integrated,
		ledger: report.NewLedger(cfg.Report.Path, [2]types.Source{
			types.Source(cfg.Sources[0].Name),
			types.Source(cfg.Sources[1].Name),
		}, logger),
		logger:     logger.With("component", "collector"),
		now:        time.Now,
	}, nil
}

// Run executes one collection cycle and returns the run report.
func (c *Collector) Run(ctx context.Context) (types.RunReport, error) {
	date := c.now().Format("2006-01-02")
	c.logger.Info("collection run starting", "date", date, "sources", len(c.cfg.Sources))

	lists := make([][]string, len(c.cfg.Sources))
	for i, src := range c.cfg.Sources {
		if i > 0 {
			if err := sleepCtx(ctx, fetcher.RandomDelay(c.cfg.Fetcher.Cooldown)); err != nil {
				return types.RunReport{}, err
			}
		}
		lists[i] = c.collectSource(ctx, src)
		c.logger.Info("source collected", "source", src.Name, "headlines", len(lists[i]))
	}

	srcA, srcB := c.cfg.Sources[0], c.cfg.Sources[1]
	batch := c.sampler.Balance(lists[0], lists[1],
		types.Source(srcA.Name), types.Source(srcB.Name), date)

	original, err := c.original.Load(ctx)
	if err != nil {
		c.logger.Warn("original dataset unreadable, continuing without it", "error", err)
		original = nil
	}
	integrated, err := c.integrated.Load(ctx)
	if err != nil {
		c.logger.Warn("integrated dataset unreadable, continuing without it", "error", err)
		integrated = nil
	}

	// The pre-batch dataset, deduplicated, is both the merge base and the
	// baseline the report counts against.
	before := merge.Merge(original, integrated, nil)
	merged := merge.Merge(before, nil, batch)
	runReport := report.Compute(date, before, batch)

	if err := c.integrated.Replace(ctx, merged); err != nil {
		return types.RunReport{}, fmt.Errorf("persist integrated dataset: %w", err)
	}
	if err := c.ledger.Append(runReport); err != nil {
		return types.RunReport{}, fmt.Errorf("append run report: %w", err)
	}

	c.logger.Info("collection run complete",
		"date", date,
		"scraped", runReport.TotalScraped,
		"added", runReport.HeadlinesAdded,
		"duplicates", runReport.DuplicatesSkipped,
		"dataset_size", runReport.SizeAfter,
	)
	return runReport, nil
}

// collectSource fetches and extracts one source's headlines. Every failure
// path returns an empty list; a bad morning at one site must not sink the
// whole run.
func (c *Collector) collectSource(ctx context.Context, src config.Source) []string {
	if src.Paginated && c.browser != nil {
		pe := extract.NewPaginatedExtractor(src, c.cfg.Browser, c.browser, c.logger)
		headlines, err := pe.Collect(ctx, src.URL)
		if err == nil {
			return headlines
		}
		c.logger.Warn("browser collection failed, falling back to single page",
			"source", src.Name, "error", err)
	}

	body := fetcher.FetchPage(ctx, c.http, src.URL,
		c.cfg.Fetcher.MaxAttempts, c.cfg.Fetcher.RetryDelay, c.logger)
	if body == nil {
		return nil
	}

	headlines, err := extract.NewRuleExtractor(src, c.logger).Parse(body)
	if err != nil {
		c.logger.Warn("extraction failed", "source", src.Name, "error", err)
		return nil
	}
	return headlines
}

// Close releases fetcher and store resources.
func (c *Collector) Close() error {
	var firstErr error
	if c.http != nil {
		firstErr = c.http.Close()
	}
	if c.browser != nil {
		if err := c.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, store := range []dataset.Store{c.original, c.integrated} {
		if store == nil {
			continue
		}
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
