package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mfdl/internal/catalog"
	"mfdl/internal/chat"
	"mfdl/internal/inbox"
)

// recentOnDashboard is how many messages and conversations the dashboard lists
const recentOnDashboard = 5

// LoginPageData is the admin login form
type LoginPageData struct {
	basePage
	Email string
	Error string
}

// DashboardPageData is the admin overview
type DashboardPageData struct {
	basePage
	Articles      int
	Categories    int
	Messages      int
	Conversations int
	Sessions      int
	Facets        []catalog.Facet
	RecentInbox   []inbox.Message
	RecentChats   []chat.Conversation
}

// InboxPageData is the admin message list
type InboxPageData struct {
	basePage
	Kind     inbox.Kind
	Query    string
	Tabs     []InboxTab
	Messages []inbox.Message
}

// InboxTab is one kind filter on the inbox page
type InboxTab struct {
	Kind   inbox.Kind
	Label  string
	Count  int
	Active bool
	URL    string
}

var kindLabels = map[inbox.Kind]string{
	inbox.KindAll:        "Tutti",
	inbox.KindLead:       "Lead",
	inbox.KindNetworking: "Networking",
	inbox.KindCurious:    "Curiosi",
}

// handleLoginPage handles GET /admin/login
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && s.sessions.Valid(cookie.Value) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	s.renderPage(w, http.StatusOK, "admin-login", LoginPageData{
		basePage: s.newBasePage(r, "Admin"),
	})
}

// handleLogin handles POST /admin/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	if err := s.auth.Check(email, r.PostForm.Get("password")); err != nil {
		s.log.Warn("Failed admin login", "remote_addr", r.RemoteAddr, "error", err)
		s.renderPage(w, http.StatusUnauthorized, "admin-login", LoginPageData{
			basePage: s.newBasePage(r, "Admin"),
			Email:    email,
			Error:    "Credenziali non valide",
		})
		return
	}

	token, expires := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/admin",
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	s.log.Info("Admin logged in", "remote_addr", r.RemoteAddr)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout handles POST /admin/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handleAdminDashboard handles GET /admin
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	messages := s.inbox.List(inbox.KindAll, "")
	chats := s.chat.List()

	data := DashboardPageData{
		basePage:      s.newBasePage(r, "Dashboard"),
		Articles:      s.store.Len(),
		Categories:    len(s.store.Categories()) - 1,
		Messages:      len(messages),
		Conversations: len(chats),
		Sessions:      s.sessions.Active(),
		Facets:        catalog.FacetCounts(s.store.All()),
		RecentInbox:   firstN(messages, recentOnDashboard),
		RecentChats:   firstN(chats, recentOnDashboard),
	}

	s.renderPage(w, http.StatusOK, "admin-dashboard", data)
}

// handleAdminInbox handles GET /admin/inbox?kind=&q=
func (s *Server) handleAdminInbox(w http.ResponseWriter, r *http.Request) {
	kind := inbox.Kind(r.URL.Query().Get("kind"))
	if _, ok := kindLabels[kind]; !ok {
		kind = inbox.KindAll
	}
	query := r.URL.Query().Get("q")

	counts := s.inbox.Counts()
	tabs := make([]InboxTab, len(inbox.Kinds))
	for i, k := range inbox.Kinds {
		tabs[i] = InboxTab{
			Kind:   k,
			Label:  kindLabels[k],
			Count:  counts[k],
			Active: k == kind,
			URL:    inboxURL(k, query),
		}
	}

	s.renderPage(w, http.StatusOK, "admin-inbox", InboxPageData{
		basePage: s.newBasePage(r, "Inbox"),
		Kind:     kind,
		Query:    query,
		Tabs:     tabs,
		Messages: s.inbox.List(kind, query),
	})
}

// handleToggleStar handles POST /admin/inbox/{id}/star
func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	msg, err := s.inbox.ToggleStar(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, inbox.ErrNotFound) {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		s.log.Error("Failed to star message", "error", err)
		http.Error(w, "Failed to update message", http.StatusInternalServerError)
		return
	}

	if isHTMXRequest(r) {
		s.renderPartial(w, http.StatusOK, "inbox-message", msg)
		return
	}
	http.Redirect(w, r, "/admin/inbox", http.StatusSeeOther)
}

func inboxURL(kind inbox.Kind, query string) string {
	values := url.Values{}
	if kind != inbox.KindAll {
		values.Set("kind", string(kind))
	}
	if query != "" {
		values.Set("q", query)
	}
	if len(values) == 0 {
		return "/admin/inbox"
	}
	return "/admin/inbox?" + values.Encode()
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
