package extract

import (
	"strings"
	"unicode/utf8"
)

// photoCreditPatterns reject credit/caption lines that ride along with
// article imagery. Matching is case-insensitive substring.
var photoCreditPatterns = []string{
	" via ",
	"photo by",
	"credit:",
}

// valid is the validity predicate applied to every candidate before it is
// accepted as a headline:
//   - length within the source's bounded range (nav labels are short,
//     article bodies are long);
//   - internal whitespace required (bare names and single tokens are not
//     headlines);
//   - no source-specific exclusion keyword (sponsored content, section
//     labels, recurring navigation strings);
//   - no photo-credit pattern.
func (e *RuleExtractor) valid(text string) bool {
	if text == "" {
		return false
	}
	if n := utf8.RuneCountInString(text); n < e.src.MinLength || n > e.src.MaxLength {
		return false
	}
	if !strings.Contains(text, " ") {
		return false
	}

	lower := strings.ToLower(text)
	for _, kw := range e.src.ExcludeKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	for _, pat := range photoCreditPatterns {
		if strings.Contains(lower, pat) {
			return false
		}
	}
	return true
}
