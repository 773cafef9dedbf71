package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linnemanlabs/harken/internal/sound"
)

func testEvent() *sound.Event {
	return &sound.Event{
		ID:         "01J0TESTEVENT0000000000000",
		Category:   "smoke_alarm",
		Tier:       sound.TierCritical,
		At:         12.5,
		Confidence: 0.91,
		CreatedAt:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
}

func TestNotify_PostsPayload(t *testing.T) {
	t.Parallel()

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL)
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if got.ID != "01J0TESTEVENT0000000000000" {
		t.Errorf("id = %s", got.ID)
	}
	if got.Category != "smoke_alarm" || got.Tier != "critical" {
		t.Errorf("payload = %+v, want critical smoke_alarm", got)
	}
	if got.Confidence != 0.91 || got.At != 12.5 {
		t.Errorf("payload numbers = %+v", got)
	}
}

func TestNotify_EmptyURLIsNoop(t *testing.T) {
	t.Parallel()

	n := New("")
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Errorf("Notify with empty URL: %v", err)
	}
}

func TestNotify_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "relay unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).Notify(context.Background(), testEvent())
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q does not mention the status code", err)
	}
	if !strings.Contains(err.Error(), "relay unavailable") {
		t.Errorf("error %q does not include the response body excerpt", err)
	}
}

func TestNotify_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(srv.URL).Notify(ctx, testEvent()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
