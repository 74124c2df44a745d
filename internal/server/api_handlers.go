package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mfdl/internal/catalog"
	"mfdl/internal/chat"
	"mfdl/internal/inbox"
)

// ArticleListResponse is the payload of GET /api/articles
type ArticleListResponse struct {
	Query    string            `json:"query"`
	Category string            `json:"category"`
	Articles []catalog.Article `json:"articles"`
	Matched  int               `json:"matched"`
	Total    int               `json:"total"`
	Summary  string            `json:"summary"`
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// ChatResponse is the payload of POST /api/chat
type ChatResponse struct {
	ConversationID string       `json:"conversation_id"`
	Reply          chat.Message `json:"reply"`
}

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 64 << 10

// handleListArticles handles GET /api/articles?q=&category=
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	state := stateFromRequest(r)
	result := state.Apply(s.store)

	s.trackFilter(r, state, result)

	s.respondJSON(w, http.StatusOK, ArticleListResponse{
		Query:    state.Query,
		Category: state.Category,
		Articles: result.Articles,
		Matched:  result.Matched,
		Total:    result.Total,
		Summary:  result.Summary(),
	})
}

// handleGetArticle handles GET /api/articles/{id}
func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articleFromPath(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Article not found")
		return
	}

	s.respondJSON(w, http.StatusOK, article)
}

// handleListCategories handles GET /api/categories
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": catalog.FacetCounts(s.store.All()),
	})
}

// handleChatAPI handles POST /api/chat
func (s *Server) handleChatAPI(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, conversationID, err := s.chat.Send(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		s.respondChatError(w, err)
		return
	}

	s.trackChat(r, conversationID, req.Message)

	s.respondJSON(w, http.StatusOK, ChatResponse{
		ConversationID: conversationID,
		Reply:          reply,
	})
}

// handleGetConversation handles GET /api/chat/{id}
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.chat.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondChatError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, conv)
}

// handleContactAPI handles POST /api/contact
func (s *Server) handleContactAPI(w http.ResponseWriter, r *http.Request) {
	var sub inbox.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := s.submitContact(r, sub)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   msg.ID,
		"kind": msg.Kind,
	})
}

func (s *Server) respondChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		s.respondError(w, http.StatusBadRequest, "Message is required")
	case errors.Is(err, chat.ErrConversationNotFound):
		s.respondError(w, http.StatusNotFound, "Conversation not found")
	default:
		s.log.Error("Chat request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Chat is unavailable")
	}
}

// stateFromRequest builds the listing state from ?q= and ?category=.
// A missing category selects "All".
func stateFromRequest(r *http.Request) catalog.State {
	query := r.URL.Query()
	state := catalog.DefaultState().WithQuery(query.Get("q"))
	if category := query.Get("category"); category != "" {
		state = state.WithCategory(category)
	}
	return state
}

func (s *Server) articleFromPath(r *http.Request) (catalog.Article, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return catalog.Article{}, catalog.ErrNotFound
	}
	return s.store.Get(id)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
