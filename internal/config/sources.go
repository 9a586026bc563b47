package config

// Built-in extraction profiles for the two default sources. Each profile is
// pure data: an ordered rule list plus the validity-filter parameters the
// extractor applies to every candidate.

// FoxNewsSource returns the default Fox News homepage profile. The rules
// walk the homepage sections from most to least specific; the trailing
// info-header rule is a broad fallback that picks up articles the section
// rules missed.
func FoxNewsSource() Source {
	return Source{
		Name:      "FoxNews",
		URL:       "https://www.foxnews.com",
		MinLength: 10,
		MaxLength: 200,
		ExcludeKeywords: []string{
			"fox nation",
			"fox news flash",
			"click here",
			"sign up",
			"subscribe",
			"watch live",
			"sponsored",
		},
		Rules: []Rule{
			{Name: "featured_story", Type: "css", Selector: "article.story-1 h3.title a"},
			{Name: "thumbs_2_7", Type: "css", Selector: "div.thumbs-2-7 article h3.title a"},
			{Name: "sidebar_secondary", Type: "css", Selector: "div.region-content-sidebar-secondary article h3.title a"},
			{Name: "collection_sections", Type: "css", Selector: "section.collection.collection-section article h3.title a"},
			{Name: "info_headers", Type: "css", Selector: "header.info-header h3.title a"},
		},
	}
}

// NBCNewsSource returns the default NBC News homepage profile. NBC markup
// varies more than Fox's, so the rules go from article headings through
// tease/card containers down to a bare link fallback filtered by href.
// The source supports browser-driven "load more" expansion when available.
func NBCNewsSource() Source {
	return Source{
		Name:             "NBC",
		URL:              "https://www.nbcnews.com",
		Paginated:        true,
		LoadMoreSelector: "button[data-testid='load-more'], button.styles_loadMoreButton__pOldr",
		MinLength:        10,
		MaxLength:        200,
		ExcludeKeywords: []string{
			"nbc news now",
			"sign up",
			"subscribe",
			"watch live",
			"sponsored",
			"shop the best",
		},
		Rules: []Rule{
			{Name: "article_headings", Type: "css", Selector: "article h2, article h3, article h4"},
			{Name: "tease_cards", Type: "css", Selector: "div[class*='tease'] h2, div[class*='card'] h2, div[class*='story'] h2, section[class*='story'] h2"},
			{Name: "heading_links", Type: "xpath", Selector: "//*[self::h2 or self::h3][a]"},
			{
				Name:      "article_links",
				Type:      "css",
				Selector:  "a[href]",
				HrefAllow: []string{"nbcnews.com"},
				HrefDeny:  []string{"/video/", "/live/", "/podcast/", "/newsletter", "/subscribe", "/account", "/login"},
			},
		},
	}
}
