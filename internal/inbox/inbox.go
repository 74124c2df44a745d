// Package inbox stores the questions visitors leave through the "Ask me
// anything" form and serves the admin conversation list.
package inbox

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrQuestionRequired is returned when the question field is blank.
	ErrQuestionRequired = errors.New("question is required")

	// ErrInvalidEmail is returned when a non-empty email does not parse.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrNotFound is returned for an unknown message id.
	ErrNotFound = errors.New("message not found")
)

// Kind is the admin's triage bucket for a message.
type Kind string

const (
	KindAll        Kind = "all"
	KindLead       Kind = "lead"
	KindNetworking Kind = "networking"
	KindCurious    Kind = "curiosi"
)

// Kinds lists the selectable filters in display order.
var Kinds = []Kind{KindAll, KindLead, KindNetworking, KindCurious}

var kindKeywords = []struct {
	kind     Kind
	keywords []string
}{
	{KindLead, []string{"consulenz", "collabor", "progett", "preventiv", "ingaggi"}},
	{KindNetworking, []string{"caff", "conoscer", "network", "evento", "meetup"}},
}

// Submission is the raw form input. Name and Email are optional.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Question string `json:"question"`
}

// Message is a stored submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Question   string    `json:"question"`
	Kind       Kind      `json:"kind"`
	Starred    bool      `json:"starred"`
	ReceivedAt time.Time `json:"received_at"`
}

// Anonymous reports whether the sender left no name.
func (m Message) Anonymous() bool {
	return m.Name == ""
}

// Classify assigns a kind from the question text.
func Classify(question string) Kind {
	q := strings.ToLower(question)
	for _, k := range kindKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(q, kw) {
				return k.kind
			}
		}
	}
	return KindCurious
}

// Inbox is an in-memory, concurrency-safe message store.
type Inbox struct {
	now func() time.Time

	mu       sync.RWMutex
	messages []Message
}

// New creates an empty inbox.
func New() *Inbox {
	return &Inbox{now: time.Now}
}

// Submit validates and stores a submission.
func (i *Inbox) Submit(s Submission) (Message, error) {
	question := strings.TrimSpace(s.Question)
	if question == "" {
		return Message{}, ErrQuestionRequired
	}

	email := strings.TrimSpace(s.Email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return Message{}, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
		}
		email = addr.Address
	}

	msg := Message{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(s.Name),
		Email:      email,
		Question:   question,
		Kind:       Classify(question),
		ReceivedAt: i.now(),
	}

	i.mu.Lock()
	i.messages = append(i.messages, msg)
	i.mu.Unlock()

	return msg, nil
}

// List returns messages of the given kind whose name, email or question
// contains query (case-insensitive), newest first. KindAll and "" match
// every kind.
func (i *Inbox) List(kind Kind, query string) []Message {
	q := strings.ToLower(strings.TrimSpace(query))

	i.mu.RLock()
	out := make([]Message, 0, len(i.messages))
	for _, m := range i.messages {
		if kind != KindAll && kind != "" && m.Kind != kind {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(m.Name+"\n"+m.Email+"\n"+m.Question), q) {
			continue
		}
		out = append(out, m)
	}
	i.mu.RUnlock()

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ReceivedAt.After(out[b].ReceivedAt)
	})
	return out
}

// ToggleStar flips the starred flag of a message.
func (i *Inbox) ToggleStar(id string) (Message, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.messages {
		if i.messages[idx].ID == id {
			i.messages[idx].Starred = !i.messages[idx].Starred
			return i.messages[idx], nil
		}
	}
	return Message{}, fmt.Errorf("message %s: %w", id, ErrNotFound)
}

// Counts returns the number of messages per kind, including KindAll.
func (i *Inbox) Counts() map[Kind]int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	counts := map[Kind]int{KindAll: len(i.messages)}
	for _, m := range i.messages {
		counts[m.Kind]++
	}
	return counts
}
