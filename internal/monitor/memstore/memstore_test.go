package memstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/linnemanlabs/harken/internal/sound"
)

func TestStore_AppendAndRecent(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ev := &sound.Event{
			ID:       fmt.Sprintf("ev-%d", i),
			Category: "siren",
			Tier:     sound.TierHigh,
			At:       float64(i),
		}
		if err := s.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	// newest first
	for i, want := range []string{"ev-4", "ev-3", "ev-2"} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestStore_RecentLimitLargerThanStore(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	_ = s.Append(ctx, &sound.Event{ID: "only"})

	got, err := s.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d events, want 1", len(got))
	}

	got, err = s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit 0 returned %d events, want all", len(got))
	}
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	s := New()
	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d events from empty store", len(got))
	}
}

func TestStore_CopiesOnAppendAndRead(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	ev := &sound.Event{ID: "a", Category: "doorbell"}
	_ = s.Append(ctx, ev)
	ev.Category = "mutated-after-append"

	got, _ := s.Recent(ctx, 1)
	if got[0].Category != "doorbell" {
		t.Errorf("stored event shares memory with caller: %s", got[0].Category)
	}

	got[0].Category = "mutated-after-read"
	again, _ := s.Recent(ctx, 1)
	if again[0].Category != "doorbell" {
		t.Errorf("read event shares memory with store: %s", again[0].Category)
	}
}
