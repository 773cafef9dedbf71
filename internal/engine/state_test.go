package engine

import (
	"testing"

	"github.com/linnemanlabs/harken/internal/rules"
)

func TestRing_FillAndMean(t *testing.T) {
	t.Parallel()

	r := newRing(3)
	if r.full() {
		t.Error("fresh ring reports full")
	}
	if r.mean() != 0 {
		t.Errorf("empty ring mean = %v, want 0", r.mean())
	}

	r.push(0.3)
	r.push(0.6)
	if r.full() {
		t.Error("ring full at 2/3")
	}
	if got := r.mean(); got < 0.449 || got > 0.451 {
		t.Errorf("partial mean = %v, want 0.45", got)
	}

	r.push(0.9)
	if !r.full() {
		t.Error("ring not full at 3/3")
	}
	if got := r.mean(); got < 0.599 || got > 0.601 {
		t.Errorf("full mean = %v, want 0.6", got)
	}
}

func TestRing_EvictsOldest(t *testing.T) {
	t.Parallel()

	r := newRing(2)
	r.push(1.0)
	r.push(1.0)
	r.push(0.0) // evicts the first 1.0

	if got := r.mean(); got < 0.499 || got > 0.501 {
		t.Errorf("mean after eviction = %v, want 0.5", got)
	}
	if !r.full() {
		t.Error("ring lost fullness after eviction")
	}
}

func TestNewState_RingCapacity(t *testing.T) {
	t.Parallel()

	r := rules.Rule{Windowed: true, WindowSec: 3, FrameHz: 2}
	st := newState(r)
	if st.ring == nil {
		t.Fatal("windowed rule got no ring")
	}
	if len(st.ring.buf) != 6 {
		t.Errorf("ring capacity = %d, want windowSec*frameHz = 6", len(st.ring.buf))
	}

	// sub-second windows still get at least one slot
	tiny := rules.Rule{Windowed: true, WindowSec: 0.25, FrameHz: 1}
	if st := newState(tiny); len(st.ring.buf) != 1 {
		t.Errorf("tiny window ring capacity = %d, want 1", len(st.ring.buf))
	}

	plain := rules.Rule{}
	if st := newState(plain); st.ring != nil {
		t.Error("non-windowed rule got a ring")
	}
}
