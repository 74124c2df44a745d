package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mfdl/internal/inbox"
)

// HealthResponse is the /health payload
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// StatusResponse is the /api/status payload
type StatusResponse struct {
	Version string        `json:"version"`
	Uptime  string        `json:"uptime"`
	Catalog CatalogStatus `json:"catalog"`
	Chat    ChatStatus    `json:"chat"`
	Inbox   int           `json:"inbox_messages"`
}

// CatalogStatus summarizes the article store
type CatalogStatus struct {
	Articles   int `json:"articles"`
	Categories int `json:"categories"`
}

// ChatStatus summarizes the chat widget
type ChatStatus struct {
	Conversations int `json:"conversations"`
}

// Version is reported by /api/status. Overridden at build time.
var Version = "dev"

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"catalog": "ok"}

	if s.store.Len() == 0 {
		checks["catalog"] = "empty"
		s.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Checks: checks,
		})
		return
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version: Version,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
		Catalog: CatalogStatus{
			Articles:   s.store.Len(),
			Categories: len(s.store.Categories()) - 1,
		},
		Chat:  ChatStatus{Conversations: s.chat.Count()},
		Inbox: s.inbox.Counts()[inbox.KindAll],
	})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}

// renderPage writes a full HTML page
func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, page, data); err != nil {
		s.log.Error("Failed to render page", "page", page, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("Failed to write response", "error", err)
	}
}

// renderPartial writes an HTML fragment for HTMX swaps
func (s *Server) renderPartial(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := s.renderer.RenderPartial(&buf, name, data); err != nil {
		s.log.Error("Failed to render partial", "partial", name, "error", err)
		http.Error(w, "Failed to render content", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("Failed to write response", "error", err)
	}
}

// handleNotFound renders the 404 page, or a JSON error under /api
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}

	s.renderPage(w, http.StatusNotFound, "not-found", NotFoundPageData{
		basePage: s.newBasePage(r, "Pagina non trovata"),
	})
}

func isAPIRequest(r *http.Request) bool {
	return r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
}
