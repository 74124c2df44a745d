package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"mfdl/internal/catalog"
)

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiResponder answers with a Gemini model primed with the site persona.
// Any model failure is logged and answered by the fallback responder instead,
// so the widget always gets a reply.
type GeminiResponder struct {
	models   contentGenerator
	model    string
	timeout  time.Duration
	persona  string
	fallback Responder
	log      *slog.Logger
}

// NewGeminiClient creates the Gemini API client used by GeminiResponder.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or chat.gemini.api_key in config file")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// NewGeminiResponder wraps client.Models. A nil fallback means the canned table.
func NewGeminiResponder(client *genai.Client, model string, timeout time.Duration, persona string, fallback Responder, log *slog.Logger) *GeminiResponder {
	return newGeminiResponder(client.Models, model, timeout, persona, fallback, log)
}

func newGeminiResponder(models contentGenerator, model string, timeout time.Duration, persona string, fallback Responder, log *slog.Logger) *GeminiResponder {
	if fallback == nil {
		fallback = NewCannedResponder()
	}
	if log == nil {
		log = slog.Default()
	}
	return &GeminiResponder{
		models:   models,
		model:    model,
		timeout:  timeout,
		persona:  persona,
		fallback: fallback,
		log:      log,
	}
}

// Reply implements Responder.
func (g *GeminiResponder) Reply(ctx context.Context, message string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: message}},
		Role:  "user",
	}}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}
	if g.persona != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: g.persona}}}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err == nil {
		if text := strings.TrimSpace(resp.Text()); text != "" {
			return text, nil
		}
		err = fmt.Errorf("empty response from model")
	}

	g.log.Warn("Gemini reply failed, using canned reply", "model", g.model, "error", err)
	return g.fallback.Reply(ctx, message)
}

// BuildPersona returns the system prompt for the site assistant, listing the
// published articles so the model can point visitors to them.
func BuildPersona(siteName string, store *catalog.Store) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sei l'assistente virtuale di %s, Product Manager con un passato da designer e developer. ", siteName)
	b.WriteString("Rispondi in italiano, in modo breve e cordiale, al massimo tre frasi. ")
	b.WriteString("Per consulenze o chiamate suggerisci la sezione 'Ask Me Anything' o l'email mattia@example.com.\n\n")
	b.WriteString("Articoli pubblicati sul blog:\n")
	for _, a := range store.All() {
		fmt.Fprintf(&b, "- [%s] %s (/blog/%d)\n", a.Category, a.Title, a.ID)
	}
	return b.String()
}
