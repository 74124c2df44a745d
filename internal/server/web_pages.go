package server

import (
	"net/http"
	"time"

	"mfdl/internal/catalog"
	"mfdl/internal/chat"
)

// latestOnHome is the number of preview cards under the featured article
const latestOnHome = 3

// basePage carries what the layout needs on every page
type basePage struct {
	SiteName     string
	Title        string
	Path         string
	CurrentYear  int
	ChatGreeting string

	// PostHog integration
	PostHogEnabled bool
	PostHogAPIKey  string
	PostHogHost    string
}

// HomePageData contains all data needed for the homepage
type HomePageData struct {
	basePage
	Featured    catalog.Article
	HasFeatured bool
	Latest      []catalog.Article
	Facets      []catalog.Facet
	Contact     ContactFormData
}

// NotFoundPageData is rendered for unknown pages and articles
type NotFoundPageData struct {
	basePage
}

func (s *Server) newBasePage(r *http.Request, title string) basePage {
	return basePage{
		SiteName:       s.app.SiteName,
		Title:          title,
		Path:           r.URL.Path,
		CurrentYear:    time.Now().Year(),
		ChatGreeting:   chat.Greeting,
		PostHogEnabled: s.posthog.Enabled(),
		PostHogAPIKey:  s.posthog.APIKey,
		PostHogHost:    s.posthog.Host,
	}
}

// handleHomePage renders the homepage with the featured article, the
// latest previews and the "ask me anything" form
func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	featured, ok := s.store.Featured()

	data := HomePageData{
		basePage:    s.newBasePage(r, s.app.SiteName),
		Featured:    featured,
		HasFeatured: ok,
		Latest:      s.store.Latest(latestOnHome),
		Facets:      catalog.FacetCounts(s.store.All()),
	}

	s.renderPage(w, http.StatusOK, "home", data)
	s.trackPageView(r)
}
