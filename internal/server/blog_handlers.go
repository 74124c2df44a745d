package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"mfdl/internal/catalog"
)

// Requests triggered by the search box or its form already carry the
// box's own text.
const (
	searchFormID  = "blog-search"
	searchInputID = "blog-query"
)

// relatedOnArticle is the number of "keep reading" cards under an article
const relatedOnArticle = 3

// BlogPageData is the listing page and its HTMX results partial
type BlogPageData struct {
	basePage
	State    catalog.State
	Chips    []CategoryChip
	Result   catalog.Result
	Summary  string
	ResetURL string
	// SyncQuery re-sends the search box out of band so chips and the
	// reset link keep it in step with State.Query
	SyncQuery bool
}

// CategoryChip is one category filter button
type CategoryChip struct {
	catalog.Facet
	Active bool
	URL    string
}

// ArticlePageData is the article detail page
type ArticlePageData struct {
	basePage
	Article catalog.Article
	Body    template.HTML
	TOC     []tocEntry
	Share   ShareLinks
	Related []catalog.Article
}

// ShareLinks are the social share targets for an article
type ShareLinks struct {
	URL      string
	Twitter  string
	LinkedIn string
}

// handleBlogPage handles GET /blog?q=&category=. HTMX requests get only
// the results partial and push the canonical URL into history.
func (s *Server) handleBlogPage(w http.ResponseWriter, r *http.Request) {
	state := stateFromRequest(r)
	result := state.Apply(s.store)

	data := BlogPageData{
		basePage: s.newBasePage(r, "Blog"),
		State:    state,
		Chips:    categoryChips(s.store, state),
		Result:   result,
		Summary:  result.Summary(),
		ResetURL: blogURL(state.Reset()),
	}

	s.trackFilter(r, state, result)

	if isHTMXRequest(r) {
		trigger := r.Header.Get("HX-Trigger")
		data.SyncQuery = trigger != searchFormID && trigger != searchInputID
		setHTMXPushURL(w, blogURL(state))
		s.renderPartial(w, http.StatusOK, "blog-results", data)
		return
	}

	s.renderPage(w, http.StatusOK, "blog", data)
	s.trackPageView(r)
}

// handleArticlePage handles GET /blog/{id}
func (s *Server) handleArticlePage(w http.ResponseWriter, r *http.Request) {
	article, err := s.articleFromPath(r)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	source := article.Body
	if source == "" {
		source = article.Excerpt
	}
	body := renderMarkdown(source)

	toc, err := tableOfContents(body)
	if err != nil {
		s.log.Warn("Failed to build table of contents", "article", article.ID, "error", err)
	}

	related, err := s.store.Related(article.ID, relatedOnArticle)
	if err != nil {
		s.log.Warn("Failed to load related articles", "article", article.ID, "error", err)
	}

	data := ArticlePageData{
		basePage: s.newBasePage(r, article.Title),
		Article:  article,
		Body:     body,
		TOC:      toc,
		Share:    shareLinks(s.articleURL(article), article.Title),
		Related:  related,
	}

	s.renderPage(w, http.StatusOK, "article", data)
	s.trackArticle(r, article)
}

// categoryChips pairs every facet with the URL that selects it while
// keeping the current search text
func categoryChips(store *catalog.Store, state catalog.State) []CategoryChip {
	facets := catalog.FacetCounts(store.All())
	chips := make([]CategoryChip, len(facets))
	for i, f := range facets {
		chips[i] = CategoryChip{
			Facet:  f,
			Active: f.Name == state.Category,
			URL:    blogURL(state.WithCategory(f.Name)),
		}
	}
	return chips
}

// blogURL is the canonical listing URL for a state. Defaults are omitted.
func blogURL(state catalog.State) string {
	values := url.Values{}
	if state.Query != "" {
		values.Set("q", state.Query)
	}
	if state.Category != catalog.AllCategories {
		values.Set("category", state.Category)
	}
	if len(values) == 0 {
		return "/blog"
	}
	return "/blog?" + values.Encode()
}

func (s *Server) articleURL(article catalog.Article) string {
	return fmt.Sprintf("%s/blog/%d", strings.TrimSuffix(s.app.BaseURL, "/"), article.ID)
}

func shareLinks(articleURL, title string) ShareLinks {
	return ShareLinks{
		URL:      articleURL,
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodeURIComponent(title) + "&url=" + encodeURIComponent(articleURL),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeURIComponent(articleURL),
	}
}

// encodeURIComponent escapes spaces as %20 rather than "+"
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
