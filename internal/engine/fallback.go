package engine

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/harken/internal/sound"
)

// FallbackDetector is the lower-fidelity detection mode: the first
// critical-tier category above a flat threshold fires, guarded by one
// global cooldown. No smoothing, no windows, no per-category state. It is
// deliberately not feature-equivalent to Engine; hosts use it as a cheap
// pre-filter when the full engine is unavailable.
type FallbackDetector struct {
	threshold     float64
	cooldownSec   float64
	cooldownUntil float64
}

// NewFallbackDetector creates a detector with the given flat threshold and
// global cooldown in seconds.
func NewFallbackDetector(threshold, cooldownSec float64) *FallbackDetector {
	return &FallbackDetector{threshold: threshold, cooldownSec: cooldownSec}
}

// ProcessFrame returns at most one event: the highest-probability
// critical-tier category at or above the threshold, or nil.
func (d *FallbackDetector) ProcessFrame(t float64, probs map[string]float64) *sound.Event {
	if t < d.cooldownUntil {
		return nil
	}

	var best string
	var bestP float64
	for cat, p := range probs {
		if sound.TierOf(cat) != sound.TierCritical || p < d.threshold {
			continue
		}
		if best == "" || p > bestP {
			best, bestP = cat, p
		}
	}
	if best == "" {
		return nil
	}

	d.cooldownUntil = t + d.cooldownSec
	return &sound.Event{
		ID:         ulid.Make().String(),
		Category:   best,
		Tier:       sound.TierCritical,
		At:         t,
		Confidence: bestP,
		CreatedAt:  time.Now(),
	}
}

// Reset clears the global cooldown between sessions.
func (d *FallbackDetector) Reset() {
	d.cooldownUntil = 0
}
