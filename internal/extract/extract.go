// Package extract turns raw page markup into validated, ordered,
// de-duplicated headline lists. Per-source behavior lives in config data
// (selection rules, exclusion keywords, length bounds), not in control flow.
package extract

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/dedup"
	"github.com/rowanhq/headliner/internal/types"
)

// Extractor produces an ordered list of distinct validated headlines from
// raw markup. Zero results is a valid outcome, not an error.
type Extractor interface {
	// Source identifies which news site this extractor handles.
	Source() types.Source

	// Parse extracts headlines from a fetched page.
	Parse(markup []byte) ([]string, error)
}

// RuleExtractor applies a source's ordered selection rules to a page.
// Rule matches are unioned in priority order; each candidate passes the
// validity predicate and within-pass keep-first dedup before acceptance.
type RuleExtractor struct {
	src    config.Source
	logger *slog.Logger
}

// NewRuleExtractor creates an extractor for one source profile.
func NewRuleExtractor(src config.Source, logger *slog.Logger) *RuleExtractor {
	return &RuleExtractor{
		src:    src,
		logger: logger.With("component", "extractor", "source", src.Name),
	}
}

// Source implements Extractor.
func (e *RuleExtractor) Source() types.Source {
	return types.Source(e.src.Name)
}

// Parse implements Extractor.
func (e *RuleExtractor) Parse(markup []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &types.ParseError{Source: e.Source(), Err: err}
	}

	// The xpath engine wants its own tree; parse lazily, only when a rule
	// needs it.
	var xdoc *html.Node

	seen := dedup.NewSet()
	var headlines []string

	accept := func(raw string) {
		text := normalize(raw)
		if !e.valid(text) {
			return
		}
		if !seen.Add(text) {
			return
		}
		headlines = append(headlines, text)
	}

	for _, rule := range e.src.Rules {
		switch rule.Type {
		case "css":
			for _, raw := range e.applyCSS(doc, rule) {
				accept(raw)
			}
		case "xpath":
			if xdoc == nil {
				xdoc, err = html.Parse(bytes.NewReader(markup))
				if err != nil {
					e.logger.Warn("xpath tree parse failed, skipping xpath rules", "error", err)
					xdoc = &html.Node{Type: html.DocumentNode}
				}
			}
			for _, raw := range e.applyXPath(xdoc, rule) {
				accept(raw)
			}
		}
	}

	e.logger.Debug("extraction pass complete", "headlines", len(headlines))
	return headlines, nil
}

// applyCSS collects candidate texts for a single CSS rule.
func (e *RuleExtractor) applyCSS(doc *goquery.Document, rule config.Rule) []string {
	var texts []string
	doc.Find(rule.Selector).Each(func(i int, sel *goquery.Selection) {
		if len(rule.HrefAllow) > 0 {
			href, ok := sel.Attr("href")
			if !ok || !hrefAllowed(href, rule) {
				return
			}
		}
		texts = append(texts, candidateText(sel))
	})
	return texts
}

// applyXPath collects candidate texts for a single XPath rule.
func (e *RuleExtractor) applyXPath(doc *html.Node, rule config.Rule) []string {
	nodes, err := htmlquery.QueryAll(doc, rule.Selector)
	if err != nil {
		e.logger.Warn("invalid xpath", "selector", rule.Selector, "error", err)
		return nil
	}

	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		texts = append(texts, htmlquery.InnerText(node))
	}
	return texts
}

// candidateText extracts headline text from a matched element: the first
// nested link's text when present (headings usually wrap their anchor),
// otherwise the element's own text.
func candidateText(sel *goquery.Selection) string {
	if link := sel.Find("a").First(); link.Length() > 0 {
		return link.Text()
	}
	return sel.Text()
}

// hrefAllowed applies a rule's link filter: the candidate must point at a
// same-site article path (relative, or containing an allow token) and must
// not contain any deny token.
func hrefAllowed(href string, rule config.Rule) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	if href == "" {
		return false
	}
	for _, deny := range rule.HrefDeny {
		if strings.Contains(href, deny) {
			return false
		}
	}
	if strings.HasPrefix(href, "/") {
		return true
	}
	for _, allow := range rule.HrefAllow {
		if strings.Contains(href, allow) {
			return true
		}
	}
	return false
}

// normalize collapses internal whitespace runs and trims the ends; markup
// text nodes often carry layout newlines and indentation.
func normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
