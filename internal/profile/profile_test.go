package profile

import (
	"testing"

	"github.com/linnemanlabs/harken/internal/sound"
)

func TestFromValue_Buckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  Level
	}{
		{-0.5, VeryConservative},
		{0.0, VeryConservative},
		{0.124, VeryConservative},
		{0.125, Conservative},
		{0.374, Conservative},
		{0.375, Balanced},
		{0.5, Balanced},
		{0.624, Balanced},
		{0.625, Sensitive},
		{0.874, Sensitive},
		{0.875, VerySensitive},
		{1.0, VerySensitive},
		{1.5, VerySensitive},
	}

	for _, tt := range tests {
		if got := FromValue(tt.value); got != tt.want {
			t.Errorf("FromValue(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, l := range Levels() {
		got, err := Parse(string(l))
		if err != nil {
			t.Errorf("Parse(%q): %v", l, err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %v", l, got)
		}
	}

	if _, err := Parse("paranoid"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty level")
	}
}

func TestLevels_OrderedBySensitivity(t *testing.T) {
	t.Parallel()

	levels := Levels()
	if len(levels) != 5 {
		t.Fatalf("levels = %d, want 5", len(levels))
	}

	// more sensitive levels fire at lower base thresholds
	for i := 1; i < len(levels); i++ {
		prev := ConfigFor(levels[i-1])
		cur := ConfigFor(levels[i])
		if cur.BaseOn >= prev.BaseOn {
			t.Errorf("%s BaseOn %v should be below %s BaseOn %v", levels[i], cur.BaseOn, levels[i-1], prev.BaseOn)
		}
		if cur.BaseCooldownSec >= prev.BaseCooldownSec {
			t.Errorf("%s cooldown %v should be below %s cooldown %v", levels[i], cur.BaseCooldownSec, levels[i-1], prev.BaseCooldownSec)
		}
	}
}

func TestConfigFor_Invariants(t *testing.T) {
	t.Parallel()

	for _, l := range Levels() {
		c := ConfigFor(l)

		if c.BaseOff >= c.BaseOn {
			t.Errorf("%s: BaseOff %v >= BaseOn %v", l, c.BaseOff, c.BaseOn)
		}
		if c.FrameHz <= 0 {
			t.Errorf("%s: non-positive FrameHz", l)
		}
		if c.UncertaintyThreshold <= 0 || c.UncertaintyDifference <= 0 {
			t.Errorf("%s: non-positive uncertainty knobs", l)
		}

		// critical reacts fastest, low slowest
		m := c.TierMultiplier
		if !(m[sound.TierCritical] < m[sound.TierHigh] &&
			m[sound.TierHigh] < m[sound.TierMedium] &&
			m[sound.TierMedium] < m[sound.TierLow]) {
			t.Errorf("%s: tier multipliers not ordered critical < high < medium < low: %v", l, m)
		}

		// critical is never windowed in shipped profiles
		if c.Windowed[sound.TierCritical] {
			t.Errorf("%s: critical tier must not be windowed", l)
		}
	}
}

func TestConfigFor_UnknownFallsBackToBalanced(t *testing.T) {
	t.Parallel()

	got := ConfigFor(Level("bogus"))
	want := ConfigFor(Balanced)
	if got != want {
		t.Errorf("ConfigFor(unknown) = %+v, want balanced config", got)
	}
}
