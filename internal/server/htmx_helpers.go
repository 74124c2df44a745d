package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HTMX request/response helpers

// isHTMXRequest checks if the request was made by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// setHTMXTriggerWithData sets a client-side event with JSON data
func setHTMXTriggerWithData(w http.ResponseWriter, event string, data interface{}) error {
	payload := map[string]interface{}{
		event: data,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger data: %w", err)
	}
	w.Header().Set("HX-Trigger", string(jsonData))
	return nil
}

// setHTMXRedirect redirects the client to a new URL (client-side redirect)
func setHTMXRedirect(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Redirect", url)
}

// setHTMXPushURL pushes a URL into the browser history
func setHTMXPushURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Push-Url", url)
}

// ToastLevel represents the toast notification level
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// showToast is a helper to show a toast notification via HTMX trigger
func showToast(w http.ResponseWriter, message string, level ToastLevel) error {
	return setHTMXTriggerWithData(w, "showToast", map[string]string{
		"message": message,
		"level":   string(level),
	})
}
