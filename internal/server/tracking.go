package server

import (
	"net/http"

	"mfdl/internal/catalog"
	"mfdl/internal/chat"
)

// Analytics failures are logged by the client and never fail a request.

func (s *Server) trackPageView(r *http.Request) {
	_ = s.analytics.PageView(r.Context(), visitorFromContext(r.Context()), r.URL.Path, nil)
}

// trackFilter records a listing search or chip selection. The unfiltered
// listing is a plain page view.
func (s *Server) trackFilter(r *http.Request, state catalog.State, result catalog.Result) {
	if state.IsDefault() {
		return
	}
	_ = s.analytics.TrackCatalogFilter(r.Context(), visitorFromContext(r.Context()),
		state.Query, state.Category, result.Matched, result.Total)
}

func (s *Server) trackArticle(r *http.Request, article catalog.Article) {
	_ = s.analytics.TrackArticleView(r.Context(), visitorFromContext(r.Context()), article.ID, article.Category)
}

func (s *Server) trackChat(r *http.Request, conversationID, message string) {
	_, topic := chat.Classify(message)
	_ = s.analytics.TrackChatMessage(r.Context(), conversationID, topic)
}
