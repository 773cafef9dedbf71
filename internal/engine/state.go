package engine

import (
	"github.com/linnemanlabs/harken/internal/rules"
	"github.com/linnemanlabs/harken/internal/sound"
)

// state is the mutable per-category detection state, owned exclusively by
// one Engine.
type state struct {
	ema           float64
	active        bool
	cooldownUntil float64

	// Debounce tracking for EMA/hysteresis rules.
	aboveOnSince float64
	aboveOnSet   bool

	// Window ring for windowed rules; nil otherwise.
	ring *ring

	// event is the active-list entry this state fired, kept so deactivation
	// can stamp its duration.
	event *sound.Event
}

func newState(r rules.Rule) *state {
	st := &state{}
	if r.Windowed {
		n := int(r.WindowSec * r.FrameHz)
		if n < 1 {
			n = 1
		}
		st.ring = newRing(n)
	}
	return st
}

// ring is a fixed-capacity FIFO of recent probabilities. Oldest samples are
// evicted once full. Capacity is windowSec*frameHz, so the mean over a full
// ring is the windowed mean the firing condition compares.
type ring struct {
	buf   []float64
	head  int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float64, capacity)}
}

func (r *ring) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

func (r *ring) full() bool {
	return r.count == len(r.buf)
}

func (r *ring) mean() float64 {
	if r.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < r.count; i++ {
		sum += r.buf[i]
	}
	return sum / float64(r.count)
}
