package server

import (
	"errors"
	"net/http"

	"mfdl/internal/chat"
	"mfdl/internal/inbox"
)

// ChatExchangeData is the partial appended to the chat log after a send
type ChatExchangeData struct {
	ConversationID string
	Messages       []chat.Message
}

// ContactFormData is the "ask me anything" form, before or after sending
type ContactFormData struct {
	Submission inbox.Submission
	Error      string
	Sent       bool
}

// handleChatPartial handles POST /chat from the widget form
func (s *Server) handleChatPartial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	message := r.PostForm.Get("message")
	conversationID := r.PostForm.Get("conversation_id")

	_, conversationID, err := s.chat.Send(r.Context(), conversationID, message)
	if errors.Is(err, chat.ErrConversationNotFound) {
		// Conversations do not survive a restart
		_, conversationID, err = s.chat.Send(r.Context(), "", message)
	}
	if errors.Is(err, chat.ErrEmptyMessage) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.log.Error("Chat request failed", "error", err)
		_ = showToast(w, "La chat non è disponibile, riprova tra poco.", ToastError)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	conv, err := s.chat.Get(conversationID)
	if err != nil {
		s.log.Error("Failed to load conversation", "id", conversationID, "error", err)
		http.Error(w, "Conversation not found", http.StatusInternalServerError)
		return
	}

	// The user message and the reply are the last two entries
	messages := conv.Messages
	if len(messages) > 2 {
		messages = messages[len(messages)-2:]
	}

	s.trackChat(r, conversationID, message)
	s.renderPartial(w, http.StatusOK, "chat-exchange", ChatExchangeData{
		ConversationID: conversationID,
		Messages:       messages,
	})
}

// handleContactPartial handles POST /contact from the home page form.
// Validation errors re-render the form with the values kept.
func (s *Server) handleContactPartial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	sub := inbox.Submission{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Question: r.PostForm.Get("question"),
	}

	if _, err := s.submitContact(r, sub); err != nil {
		s.renderPartial(w, http.StatusOK, "contact-form", ContactFormData{
			Submission: sub,
			Error:      contactErrorMessage(err),
		})
		return
	}

	_ = showToast(w, "Grazie! Ti risponderò al più presto.", ToastSuccess)
	s.renderPartial(w, http.StatusOK, "contact-form", ContactFormData{Sent: true})
}

func (s *Server) submitContact(r *http.Request, sub inbox.Submission) (inbox.Message, error) {
	msg, err := s.inbox.Submit(sub)
	if err != nil {
		return inbox.Message{}, err
	}

	s.log.Info("Contact message received", "id", msg.ID, "kind", msg.Kind, "anonymous", msg.Anonymous())
	_ = s.analytics.TrackContactSubmitted(r.Context(), msg.ID, string(msg.Kind), msg.Anonymous())
	return msg, nil
}

func contactErrorMessage(err error) string {
	switch {
	case errors.Is(err, inbox.ErrQuestionRequired):
		return "Scrivi la tua domanda prima di inviare."
	case errors.Is(err, inbox.ErrInvalidEmail):
		return "L'indirizzo email non sembra valido."
	default:
		return "Qualcosa è andato storto, riprova."
	}
}
