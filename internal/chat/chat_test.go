package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"

	"mfdl/internal/catalog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		topic string
	}{
		{"Come posso contattarti?", "contact"},
		{"Mi mandi la tua EMAIL?", "contact"},
		{"Vorrei una consulenza", "consulting"},
		{"ciao, vorrei collaborare", "consulting"},
		{"Raccontami la tua esperienza", "experience"},
		{"Hai un CV?", "experience"},
		{"Dove trovo il blog?", "blog"},
		{"Ciao!", "greeting"},
		{"Quanto costa un biglietto per Marte?", "default"},
		{"", "default"},
	}

	for _, tt := range tests {
		reply, topic := Classify(tt.input)
		if topic != tt.topic {
			t.Errorf("Classify(%q) topic = %q, want %q", tt.input, topic, tt.topic)
		}
		if reply == "" {
			t.Errorf("Classify(%q) returned an empty reply", tt.input)
		}
	}
}

func TestCannedResponder_Reply(t *testing.T) {
	reply, err := NewCannedResponder().Reply(context.Background(), "Vorrei leggere un articolo")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(reply, "blog") {
		t.Errorf("Expected blog reply, got %q", reply)
	}
}

func TestService_StartHasGreeting(t *testing.T) {
	svc := NewService(NewCannedResponder())
	c := svc.Start()

	if c.ID == "" {
		t.Fatal("Expected conversation id")
	}
	if len(c.Messages) != 1 || c.Messages[0].Text != Greeting || c.Messages[0].Sender != SenderBot {
		t.Errorf("Expected greeting only, got %+v", c.Messages)
	}
}

func TestService_SendAppendsUserAndBot(t *testing.T) {
	svc := NewService(NewCannedResponder())

	msg, id, err := svc.Send(context.Background(), "", "ciao")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.Sender != SenderBot || msg.ID != 3 {
		t.Errorf("Expected bot message #3, got %+v", msg)
	}

	c, err := svc.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(c.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(c.Messages))
	}
	if c.Messages[1].Sender != SenderUser || c.Messages[1].Text != "ciao" {
		t.Errorf("Unexpected user message %+v", c.Messages[1])
	}

	if _, _, err := svc.Send(context.Background(), id, "consulenza"); err != nil {
		t.Fatalf("Second Send failed: %v", err)
	}
	if c, _ := svc.Get(id); len(c.Messages) != 5 {
		t.Errorf("Expected 5 messages after second exchange, got %d", len(c.Messages))
	}
}

func TestService_SendErrors(t *testing.T) {
	svc := NewService(NewCannedResponder())

	if _, _, err := svc.Send(context.Background(), "", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Expected ErrEmptyMessage, got %v", err)
	}
	if _, _, err := svc.Send(context.Background(), "nope", "ciao"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Expected ErrConversationNotFound, got %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("Failed sends should not open conversations, got %d", svc.Count())
	}
}

func TestService_ListNewestFirst(t *testing.T) {
	svc := NewService(NewCannedResponder())
	clock := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first := svc.Start()
	second := svc.Start()
	if _, _, err := svc.Send(context.Background(), first.ID, "ciao"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	list := svc.List()
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("Expected [first, second] by update time, got %v", []string{list[0].ID, list[1].ID})
	}
}

func TestService_ConcurrentSends(t *testing.T) {
	svc := NewService(NewCannedResponder())
	id := svc.Start().ID

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = svc.Send(context.Background(), id, "blog")
		}()
	}
	wg.Wait()

	c, _ := svc.Get(id)
	if len(c.Messages) != 41 {
		t.Errorf("Expected 41 messages, got %d", len(c.Messages))
	}
}

type fakeModels struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}, Role: "model"},
		}},
	}, nil
}

func TestGeminiResponder_UsesModelReply(t *testing.T) {
	models := &fakeModels{text: "  Certo, scrivimi!  "}
	g := newGeminiResponder(models, "gemini-test", time.Second, "persona", nil, nil)

	reply, err := g.Reply(context.Background(), "ciao")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if reply != "Certo, scrivimi!" {
		t.Errorf("Expected trimmed model reply, got %q", reply)
	}
	if models.model != "gemini-test" {
		t.Errorf("Expected model gemini-test, got %q", models.model)
	}
	if models.config.SystemInstruction == nil || models.config.SystemInstruction.Parts[0].Text != "persona" {
		t.Error("Expected persona as system instruction")
	}
}

func TestGeminiResponder_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		models *fakeModels
	}{
		{"model error", &fakeModels{err: errors.New("quota exceeded")}},
		{"empty reply", &fakeModels{text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGeminiResponder(tt.models, "gemini-test", 0, "", nil, nil)
			reply, err := g.Reply(context.Background(), "consulenza")
			if err != nil {
				t.Fatalf("Reply should not fail, got %v", err)
			}
			want, _ := Classify("consulenza")
			if reply != want {
				t.Errorf("Expected canned reply, got %q", reply)
			}
		})
	}
}

func TestBuildPersona_ListsArticles(t *testing.T) {
	persona := BuildPersona("Mattia", catalog.DefaultStore())

	if !strings.Contains(persona, "assistente virtuale di Mattia") {
		t.Error("Expected site name in persona")
	}
	if !strings.Contains(persona, "[Design] Atomic Design per chi odia la teoria (/blog/9)") {
		t.Errorf("Expected article listing in persona, got:\n%s", persona)
	}
}
