package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"

	"mfdl/internal/config"
)

// PostHogClient wraps the PostHog SDK for product analytics. A disabled
// client accepts every call and sends nothing.
type PostHogClient struct {
	client  posthog.Client
	enabled bool
	log     *slog.Logger
}

// EventProperties contains properties for an event
type EventProperties map[string]interface{}

// NewPostHogClient creates a new PostHog analytics client
func NewPostHogClient(cfg config.PostHog) (*PostHogClient, error) {
	if !cfg.Enabled() {
		return NewDisabledClient(), nil
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint: cfg.Host,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create PostHog client: %w", err)
	}

	return &PostHogClient{
		client:  client,
		enabled: true,
		log:     slog.Default(),
	}, nil
}

// NewDisabledClient returns a client that drops every event.
func NewDisabledClient() *PostHogClient {
	return &PostHogClient{enabled: false, log: slog.Default()}
}

// IsEnabled returns whether PostHog tracking is enabled
func (p *PostHogClient) IsEnabled() bool {
	return p.enabled
}

// Capture sends an event to PostHog
func (p *PostHogClient) Capture(ctx context.Context, distinctID string, event string, properties EventProperties) error {
	if !p.enabled {
		return nil
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}

	if err := p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	}); err != nil {
		p.log.Warn("Failed to enqueue analytics event", "event", event, "error", err)
		return err
	}
	return nil
}

// PageView tracks a page view event
func (p *PostHogClient) PageView(ctx context.Context, distinctID string, path string, properties EventProperties) error {
	if properties == nil {
		properties = make(EventProperties)
	}
	properties["$current_url"] = path

	return p.Capture(ctx, distinctID, "$pageview", properties)
}

// TrackCatalogFilter tracks a blog listing search or category selection
func (p *PostHogClient) TrackCatalogFilter(ctx context.Context, distinctID, query, category string, matched, total int) error {
	return p.Capture(ctx, distinctID, "blog_filter_applied", EventProperties{
		"query":    query,
		"category": category,
		"matched":  matched,
		"total":    total,
		"empty":    matched == 0,
	})
}

// TrackArticleView tracks when a visitor opens an article
func (p *PostHogClient) TrackArticleView(ctx context.Context, distinctID string, articleID int, category string) error {
	return p.Capture(ctx, distinctID, "article_viewed", EventProperties{
		"article_id": articleID,
		"category":   category,
	})
}

// TrackChatMessage tracks a message sent through the chat widget
func (p *PostHogClient) TrackChatMessage(ctx context.Context, conversationID string, topic string) error {
	return p.Capture(ctx, conversationID, "chat_message_sent", EventProperties{
		"topic": topic,
	})
}

// TrackContactSubmitted tracks an "ask me anything" submission
func (p *PostHogClient) TrackContactSubmitted(ctx context.Context, messageID string, kind string, anonymous bool) error {
	return p.Capture(ctx, messageID, "contact_submitted", EventProperties{
		"kind":      kind,
		"anonymous": anonymous,
	})
}

// Close flushes pending events
func (p *PostHogClient) Close() error {
	if !p.enabled {
		return nil
	}
	return p.client.Close()
}
