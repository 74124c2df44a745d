package catalog

import "strings"

// MatchesText reports whether query occurs, ignoring case, in the article's
// title, excerpt or category. The empty query matches everything.
func MatchesText(query string, a Article) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Excerpt), q) ||
		strings.Contains(strings.ToLower(a.Category), q)
}

// MatchesCategory reports whether category selects the article. Unlike the
// text match this comparison is exact and case-sensitive.
func MatchesCategory(category string, a Article) bool {
	return category == AllCategories || category == a.Category
}

// Matches combines the text and category criteria with AND.
func Matches(query, category string, a Article) bool {
	return MatchesText(query, a) && MatchesCategory(category, a)
}

// Filter returns the articles selected by (query, category), keeping their
// original order. It never fails: unknown categories just match nothing.
func Filter(query, category string, articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if Matches(query, category, a) {
			out = append(out, a)
		}
	}
	return out
}
