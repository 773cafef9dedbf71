package engine

import (
	"testing"

	"github.com/linnemanlabs/harken/internal/sound"
)

func TestFallbackDetector_FiresOnCritical(t *testing.T) {
	t.Parallel()

	d := NewFallbackDetector(0.8, 10)

	ev := d.ProcessFrame(0, map[string]float64{"smoke_alarm": 0.85, "doorbell": 0.99})
	if ev == nil {
		t.Fatal("expected a fire for smoke_alarm")
	}
	if ev.Category != "smoke_alarm" || ev.Tier != sound.TierCritical {
		t.Errorf("event = %+v, want critical smoke_alarm", ev)
	}
	if ev.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", ev.Confidence)
	}
	if ev.ID == "" {
		t.Error("event has no ID")
	}
}

func TestFallbackDetector_PicksHighestCritical(t *testing.T) {
	t.Parallel()

	d := NewFallbackDetector(0.8, 10)
	ev := d.ProcessFrame(0, map[string]float64{
		"smoke_alarm":    0.85,
		"glass_breaking": 0.95,
	})
	if ev == nil || ev.Category != "glass_breaking" {
		t.Fatalf("event = %+v, want glass_breaking", ev)
	}
}

func TestFallbackDetector_IgnoresNonCriticalAndBelowThreshold(t *testing.T) {
	t.Parallel()

	d := NewFallbackDetector(0.8, 10)

	// high tier, not critical
	if ev := d.ProcessFrame(0, map[string]float64{"siren": 0.99}); ev != nil {
		t.Errorf("fired %+v for a non-critical category", ev)
	}
	// critical but under threshold
	if ev := d.ProcessFrame(1, map[string]float64{"smoke_alarm": 0.79}); ev != nil {
		t.Errorf("fired %+v below threshold", ev)
	}
}

func TestFallbackDetector_GlobalCooldown(t *testing.T) {
	t.Parallel()

	d := NewFallbackDetector(0.8, 10)
	if ev := d.ProcessFrame(0, map[string]float64{"smoke_alarm": 0.9}); ev == nil {
		t.Fatal("expected initial fire")
	}

	// the cooldown is shared across categories
	if ev := d.ProcessFrame(5, map[string]float64{"glass_breaking": 0.9}); ev != nil {
		t.Errorf("fired %+v during global cooldown", ev)
	}
	if ev := d.ProcessFrame(10, map[string]float64{"glass_breaking": 0.9}); ev == nil {
		t.Error("expected fire once cooldown elapsed")
	}
}

func TestFallbackDetector_Reset(t *testing.T) {
	t.Parallel()

	d := NewFallbackDetector(0.8, 100)
	d.ProcessFrame(0, map[string]float64{"smoke_alarm": 0.9})
	d.Reset()

	if ev := d.ProcessFrame(1, map[string]float64{"smoke_alarm": 0.9}); ev == nil {
		t.Error("expected fire after reset cleared the cooldown")
	}
}
