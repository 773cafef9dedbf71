// Package profile defines the five named sensitivity levels and their
// immutable configuration records. Rule generation is a pure function of
// (tier, level config); see the rules package.
package profile

import (
	"fmt"

	"github.com/linnemanlabs/harken/internal/sound"
)

// Level is one of the five named sensitivity levels, ordered from least to
// most sensitive.
type Level string

const (
	VeryConservative Level = "very_conservative"
	Conservative     Level = "conservative"
	Balanced         Level = "balanced"
	Sensitive        Level = "sensitive"
	VerySensitive    Level = "very_sensitive"
)

// Levels lists all levels in ascending sensitivity order.
func Levels() []Level {
	return []Level{VeryConservative, Conservative, Balanced, Sensitive, VerySensitive}
}

// Valid reports whether l names a shipped level.
func (l Level) Valid() bool {
	switch l {
	case VeryConservative, Conservative, Balanced, Sensitive, VerySensitive:
		return true
	default:
		return false
	}
}

// Parse converts a level name into a Level.
func Parse(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown sensitivity level %q", s)
	}
	return l, nil
}

// FromValue maps a continuous sensitivity value in [0,1] to the nearest
// level bucket. Values outside [0,1] clamp to the end levels.
func FromValue(v float64) Level {
	switch {
	case v < 0.125:
		return VeryConservative
	case v < 0.375:
		return Conservative
	case v < 0.625:
		return Balanced
	case v < 0.875:
		return Sensitive
	default:
		return VerySensitive
	}
}

// Config is the immutable knob set of one sensitivity level. Tier-indexed
// arrays use sound.Tier as the index.
type Config struct {
	// Uncertainty gate: a frame is uncertain when the classifier's top
	// score is below Threshold or the top-1/top-2 gap is below Difference.
	UncertaintyThreshold  float64
	UncertaintyDifference float64

	// Base activation/deactivation thresholds before per-tier scaling.
	BaseOn  float64
	BaseOff float64

	// Base timings before per-tier multipliers, scales, and floors.
	BaseDebounceSec float64
	BaseCooldownSec float64

	// FrameHz is the classification frame rate rules are generated for.
	FrameHz float64

	// TierMultiplier stretches base timings per tier; critical is smallest
	// (reacts fastest), low is largest.
	TierMultiplier [sound.NumTiers]float64

	// Windowed selects windowed-mean detection instead of EMA/hysteresis
	// per tier. Critical is never windowed in shipped profiles.
	Windowed [sound.NumTiers]bool
}

// configs holds the shipped per-level records. Indexed by Level; treat as
// read-only.
var configs = map[Level]Config{
	VeryConservative: {
		UncertaintyThreshold:  0.55,
		UncertaintyDifference: 0.25,
		BaseOn:                0.75,
		BaseOff:               0.55,
		BaseDebounceSec:       3.0,
		BaseCooldownSec:       45.0,
		FrameHz:               1.0,
		TierMultiplier:        [sound.NumTiers]float64{sound.TierLow: 1.6, sound.TierMedium: 1.3, sound.TierHigh: 1.0, sound.TierCritical: 0.8},
		Windowed:              [sound.NumTiers]bool{sound.TierLow: true, sound.TierMedium: true, sound.TierHigh: true},
	},
	Conservative: {
		UncertaintyThreshold:  0.50,
		UncertaintyDifference: 0.20,
		BaseOn:                0.70,
		BaseOff:               0.50,
		BaseDebounceSec:       2.5,
		BaseCooldownSec:       30.0,
		FrameHz:               1.0,
		TierMultiplier:        [sound.NumTiers]float64{sound.TierLow: 1.5, sound.TierMedium: 1.2, sound.TierHigh: 0.9, sound.TierCritical: 0.7},
		Windowed:              [sound.NumTiers]bool{sound.TierLow: true, sound.TierMedium: true},
	},
	Balanced: {
		UncertaintyThreshold:  0.45,
		UncertaintyDifference: 0.15,
		BaseOn:                0.65,
		BaseOff:               0.45,
		BaseDebounceSec:       2.0,
		BaseCooldownSec:       20.0,
		FrameHz:               1.0,
		TierMultiplier:        [sound.NumTiers]float64{sound.TierLow: 1.3, sound.TierMedium: 1.0, sound.TierHigh: 0.8, sound.TierCritical: 0.6},
		Windowed:              [sound.NumTiers]bool{sound.TierLow: true},
	},
	Sensitive: {
		UncertaintyThreshold:  0.40,
		UncertaintyDifference: 0.12,
		BaseOn:                0.55,
		BaseOff:               0.38,
		BaseDebounceSec:       1.5,
		BaseCooldownSec:       15.0,
		FrameHz:               1.0,
		TierMultiplier:        [sound.NumTiers]float64{sound.TierLow: 1.1, sound.TierMedium: 0.9, sound.TierHigh: 0.7, sound.TierCritical: 0.5},
	},
	VerySensitive: {
		UncertaintyThreshold:  0.35,
		UncertaintyDifference: 0.10,
		BaseOn:                0.45,
		BaseOff:               0.30,
		BaseDebounceSec:       1.0,
		BaseCooldownSec:       10.0,
		FrameHz:               1.0,
		TierMultiplier:        [sound.NumTiers]float64{sound.TierLow: 1.0, sound.TierMedium: 0.8, sound.TierHigh: 0.6, sound.TierCritical: 0.4},
	},
}

// ConfigFor returns the configuration record for a level. Unknown levels
// fall back to Balanced.
func ConfigFor(l Level) Config {
	if c, ok := configs[l]; ok {
		return c
	}
	return configs[Balanced]
}
