package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.Query != "" || s.Category != "All" {
		t.Errorf("Expected (\"\", \"All\"), got (%q, %q)", s.Query, s.Category)
	}
	if !s.IsDefault() {
		t.Error("DefaultState should report IsDefault")
	}
}

func TestState_TransitionsDoNotMutate(t *testing.T) {
	s := DefaultState()
	next := s.WithQuery("okr").WithCategory("OKRs")

	if s.Query != "" || s.Category != "All" {
		t.Errorf("Original state changed to (%q, %q)", s.Query, s.Category)
	}
	if next.Query != "okr" || next.Category != "OKRs" {
		t.Errorf("Expected (okr, OKRs), got (%q, %q)", next.Query, next.Category)
	}
}

func TestState_ResetRestoresFullStore(t *testing.T) {
	store := DefaultStore()

	filtered := DefaultState().WithQuery("zzz").WithCategory("Design")
	if got := filtered.Apply(store); !got.Empty() {
		t.Fatalf("Expected empty result before reset, got %d matches", got.Matched)
	}

	reset := filtered.Reset()
	if reset.Query != "" || reset.Category != "All" {
		t.Errorf("Reset should restore defaults, got (%q, %q)", reset.Query, reset.Category)
	}

	result := reset.Apply(store)
	if diff := cmp.Diff(store.All(), result.Articles); diff != "" {
		t.Errorf("Reset result should equal the store (-want +got):\n%s", diff)
	}
	if result.Summary() != "12 articoli totali" {
		t.Errorf("Unexpected summary %q", result.Summary())
	}
}

func TestState_ApplyScenarios(t *testing.T) {
	store := DefaultStore()

	got := DefaultState().WithQuery("OKR").WithCategory("OKRs").Apply(store)
	if diff := cmp.Diff([]int{3, 10}, ids(got.Articles)); diff != "" {
		t.Errorf("OKR/OKRs mismatch (-want +got):\n%s", diff)
	}
	if got.Matched != 2 || got.Total != 12 {
		t.Errorf("Expected (2, 12), got (%d, %d)", got.Matched, got.Total)
	}
}
