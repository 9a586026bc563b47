package extract

import (
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/rowanhq/headliner/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const foxHomepageHTML = `<html><body>
<article class="story-1">
  <h3 class="title"><a href="/politics/a">Senate passes sweeping budget deal after marathon session</a></h3>
</article>
<div class="thumbs-2-7">
  <article><h3 class="title"><a href="/us/b">Storm system batters the Gulf Coast overnight</a></h3></article>
  <article><h3 class="title"><a href="/us/c">Short one</a></h3></article>
</div>
<div class="region-content-sidebar-secondary">
  <article><h3 class="title"><a href="/world/d">Markets rally as inflation report cools</a></h3></article>
</div>
<section class="collection collection-section">
  <article><h3 class="title"><a href="/sports/e">Senate passes sweeping budget deal after marathon session</a></h3></article>
  <article><h3 class="title"><a href="/ent/f">Royals greet fans Photo by Jane Doe</a></h3></article>
  <article><h3 class="title"><a href="/g">Sign up for the morning newsletter today</a></h3></article>
</section>
<header class="info-header">
  <h3 class="title"><a href="/h">Fallback headline only the broad rule finds</a></h3>
</header>
</body></html>`

const nbcHomepageHTML = `<html><body>
<article><h2><a href="/politics/x">White House unveils new tariff framework for allies</a></h2></article>
<div class="tease-card-inner"><h2>Wildfire smoke blankets the upper Midwest</h2></div>
<h3><a href="/science/y">Astronomers spot a record-breaking comet</a></h3>
<a href="https://www.nbcnews.com/news/z">Jury reaches verdict in landmark antitrust case</a>
<a href="https://www.nbcnews.com/video/clip">Video headline that must be filtered out here</a>
<a href="https://example.com/offsite">Offsite link headline should not be accepted</a>
<a href="/local/w">Relative link to a local coverage story works</a>
</body></html>`

func TestFoxNewsExtraction(t *testing.T) {
	e := NewRuleExtractor(config.FoxNewsSource(), testLogger)

	got, err := e.Parse([]byte(foxHomepageHTML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{
		"Senate passes sweeping budget deal after marathon session",
		"Storm system batters the Gulf Coast overnight",
		"Markets rally as inflation report cools",
		"Fallback headline only the broad rule finds",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headlines = %#v, want %#v", got, want)
	}
}

func TestNBCExtraction(t *testing.T) {
	e := NewRuleExtractor(config.NBCNewsSource(), testLogger)

	got, err := e.Parse([]byte(nbcHomepageHTML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{
		"White House unveils new tariff framework for allies",
		"Wildfire smoke blankets the upper Midwest",
		"Astronomers spot a record-breaking comet",
		"Jury reaches verdict in landmark antitrust case",
		"Relative link to a local coverage story works",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headlines = %#v, want %#v", got, want)
	}
}

func TestDuplicateWithinPassKeptOnce(t *testing.T) {
	e := NewRuleExtractor(config.FoxNewsSource(), testLogger)

	got, err := e.Parse([]byte(foxHomepageHTML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	count := 0
	for _, h := range got {
		if h == "Senate passes sweeping budget deal after marathon session" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("repeated headline appeared %d times, want 1", count)
	}
}

func TestWhitespaceNormalization(t *testing.T) {
	e := NewRuleExtractor(config.FoxNewsSource(), testLogger)

	markup := `<article class="story-1"><h3 class="title"><a href="/x">
		Breaking    news arrives
		with   messy layout
	</a></h3></article>`

	got, err := e.Parse([]byte(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"Breaking news arrives with messy layout"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headlines = %#v, want %#v", got, want)
	}
}

func TestValidityPredicate(t *testing.T) {
	e := NewRuleExtractor(config.FoxNewsSource(), testLogger)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"below minimum length", "Nine char", false},
		{"at minimum with whitespace", "Budget deal now", true},
		{"long single token", "Supercalifragilistic", false},
		{"exclusion keyword", "Fox Nation special event tonight", false},
		{"photo credit via", "Stars arrive via the red carpet", false},
		{"photo credit byline", "Photo by staff at the scene", false},
		{"photo credit label", "Credit: agency pool footage today", false},
		{"above maximum length", strings.Repeat("a", 100) + " " + strings.Repeat("b", 101), false},
		// Length bounds count characters, not bytes: 5 runes over 13 bytes.
		{"multibyte below minimum", "日本 経済", false},
		// 123 runes but well over 200 bytes.
		{"multibyte within bounds", strings.Repeat("ニュース", 30) + " 速報", true},
		{"ordinary headline", "Council approves downtown transit expansion plan", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.valid(tt.text); got != tt.want {
				t.Errorf("valid(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEmptyPageYieldsNoHeadlines(t *testing.T) {
	e := NewRuleExtractor(config.NBCNewsSource(), testLogger)

	got, err := e.Parse([]byte("<html><body><p>nothing here</p></body></html>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no headlines, got %#v", got)
	}
}

func TestHrefFilter(t *testing.T) {
	rule := config.Rule{
		HrefAllow: []string{"nbcnews.com"},
		HrefDeny:  []string{"/video/", "/live/"},
	}

	tests := []struct {
		href string
		want bool
	}{
		{"/news/story", true},
		{"https://www.nbcnews.com/news/story", true},
		{"https://www.nbcnews.com/video/clip", false},
		{"/live/blog", false},
		{"https://example.com/elsewhere", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := hrefAllowed(tt.href, rule); got != tt.want {
			t.Errorf("hrefAllowed(%q) = %v, want %v", tt.href, got, tt.want)
		}
	}
}
