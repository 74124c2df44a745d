package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage is returned when the user sends only whitespace.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrConversationNotFound is returned for an unknown conversation id.
	ErrConversationNotFound = errors.New("conversation not found")
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of a conversation.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the log of one widget session.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service keeps conversations in memory and asks a Responder for replies.
type Service struct {
	responder Responder
	now       func() time.Time

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService creates a chat service backed by responder.
func NewService(responder Responder) *Service {
	return &Service{
		responder:     responder,
		now:           time.Now,
		conversations: make(map[string]*Conversation),
	}
}

// Start opens a new conversation holding only the greeting.
func (s *Service) Start() Conversation {
	now := s.now()
	c := &Conversation{
		ID:        uuid.NewString(),
		Messages:  []Message{{ID: 1, Text: Greeting, Sender: SenderBot, Timestamp: now}},
		StartedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.conversations[c.ID] = c
	s.mu.Unlock()

	return c.snapshot()
}

// Send records the user's message, asks the responder and records the
// reply. An empty conversation id starts a new conversation. It returns the
// bot message and the conversation id used.
func (s *Service) Send(ctx context.Context, conversationID, text string) (Message, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, conversationID, ErrEmptyMessage
	}

	if conversationID == "" {
		conversationID = s.Start().ID
	}

	if err := s.appendMessage(conversationID, text, SenderUser); err != nil {
		return Message{}, conversationID, err
	}

	reply, err := s.responder.Reply(ctx, text)
	if err != nil {
		return Message{}, conversationID, fmt.Errorf("failed to generate reply: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return Message{}, conversationID, ErrConversationNotFound
	}
	msg := c.add(reply, SenderBot, s.now())
	return msg, conversationID, nil
}

func (s *Service) appendMessage(conversationID, text string, sender Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[conversationID]
	if !ok {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}
	c.add(text, sender, s.now())
	return nil
}

// Get returns a copy of the conversation.
func (s *Service) Get(conversationID string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[conversationID]
	if !ok {
		return Conversation{}, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}
	return c.snapshot(), nil
}

// List returns every conversation, most recently updated first.
func (s *Service) List() []Conversation {
	s.mu.RLock()
	out := make([]Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c.snapshot())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Count returns the number of open conversations.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (c *Conversation) add(text string, sender Sender, at time.Time) Message {
	msg := Message{
		ID:        len(c.Messages) + 1,
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = at
	return msg
}

func (c *Conversation) snapshot() Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}
