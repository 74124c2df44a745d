package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/posthog/posthog-go"

	"mfdl/internal/config"
)

type recordingClient struct {
	posthog.Client
	events []posthog.Capture
	err    error
	closed bool
}

func (r *recordingClient) Enqueue(msg posthog.Message) error {
	if r.err != nil {
		return r.err
	}
	if c, ok := msg.(posthog.Capture); ok {
		r.events = append(r.events, c)
	}
	return nil
}

func (r *recordingClient) Close() error {
	r.closed = true
	return nil
}

func TestNewPostHogClient_DisabledWithoutKey(t *testing.T) {
	client, err := NewPostHogClient(config.PostHog{})
	if err != nil {
		t.Fatalf("NewPostHogClient failed: %v", err)
	}
	if client.IsEnabled() {
		t.Error("Client without API key should be disabled")
	}
	if err := client.TrackCatalogFilter(context.Background(), "anon", "okr", "OKRs", 2, 12); err != nil {
		t.Errorf("Disabled client should accept events, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Disabled Close should succeed, got %v", err)
	}
}

func TestCapture_SendsProperties(t *testing.T) {
	rec := &recordingClient{}
	client := &PostHogClient{client: rec, enabled: true, log: NewDisabledClient().log}

	if err := client.TrackCatalogFilter(context.Background(), "visitor-1", "okr", "OKRs", 2, 12); err != nil {
		t.Fatalf("TrackCatalogFilter failed: %v", err)
	}
	if err := client.PageView(context.Background(), "visitor-1", "/blog", nil); err != nil {
		t.Fatalf("PageView failed: %v", err)
	}

	if len(rec.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(rec.events))
	}

	filter := rec.events[0]
	if filter.Event != "blog_filter_applied" || filter.DistinctId != "visitor-1" {
		t.Errorf("Unexpected event %+v", filter)
	}
	if filter.Properties["category"] != "OKRs" || filter.Properties["matched"] != 2 || filter.Properties["empty"] != false {
		t.Errorf("Unexpected properties %+v", filter.Properties)
	}

	if rec.events[1].Event != "$pageview" || rec.events[1].Properties["$current_url"] != "/blog" {
		t.Errorf("Unexpected page view %+v", rec.events[1])
	}

	if err := client.Close(); err != nil || !rec.closed {
		t.Errorf("Expected Close to reach the SDK client, err=%v", err)
	}
}

func TestCapture_PropagatesEnqueueError(t *testing.T) {
	rec := &recordingClient{err: errors.New("queue full")}
	client := &PostHogClient{client: rec, enabled: true, log: NewDisabledClient().log}

	if err := client.TrackChatMessage(context.Background(), "conv-1", "blog"); err == nil {
		t.Error("Expected enqueue error")
	}
}
