package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie = "mfdl_session"
	visitorCookie = "mfdl_visitor"
)

type contextKey string

const visitorKey contextKey = "visitor"

// requireAdmin protects back-office pages with the session cookie set by
// the login form. Requests without a valid session go to the login page.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || !s.sessions.Valid(cookie.Value) {
			if err == nil {
				s.log.Warn("Rejected admin session", "remote_addr", r.RemoteAddr)
			}
			if isHTMXRequest(r) {
				setHTMXRedirect(w, "/admin/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// visitorID gives every browser a stable anonymous id used as the
// analytics distinct id.
func visitorID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(visitorCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				id = cookie.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey, id)))
	})
}

// visitorFromContext returns the id set by visitorID, or "anonymous".
func visitorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(visitorKey).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}

// securityHeaders adds security headers to all responses
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Allow inline scripts/styles for HTMX and the PostHog snippet
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com https://us-assets.i.posthog.com; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https:; " +
			"font-src 'self' data:; " +
			"connect-src 'self' https://app.posthog.com https://us.i.posthog.com;"
		w.Header().Set("Content-Security-Policy", csp)

		next.ServeHTTP(w, r)
	})
}

// noCache adds headers to prevent caching (useful for HTMX partials)
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		next.ServeHTTP(w, r)
	})
}
