// Package rules derives per-category alert rules from the tier catalog and
// a sensitivity level. Generation is pure and idempotent: the same level
// always yields the same rule set.
package rules

import (
	"fmt"

	"github.com/linnemanlabs/harken/internal/profile"
	"github.com/linnemanlabs/harken/internal/sound"
)

// Rule is the immutable alert configuration for one sound category.
type Rule struct {
	Category string     `json:"category"`
	Tier     sound.Tier `json:"tier"`

	// Hysteresis thresholds, Off < On, both in (0,1).
	On  float64 `json:"on"`
	Off float64 `json:"off"`

	DebounceSec float64 `json:"debounce_sec"`
	CooldownSec float64 `json:"cooldown_sec"`
	FrameHz     float64 `json:"frame_hz"`

	// Windowed selects windowed-mean detection; WindowSec and WindowThresh
	// are only meaningful when it is set.
	Windowed     bool    `json:"windowed"`
	WindowSec    float64 `json:"window_sec,omitempty"`
	WindowThresh float64 `json:"window_thresh,omitempty"`
}

// Validate checks rule invariants. The generator only emits valid rules;
// this guards externally supplied overrides at the boundary so the engine
// hot path never re-checks.
func (r Rule) Validate() error {
	if r.Category == "" {
		return fmt.Errorf("rule: empty category")
	}
	if r.On <= 0 || r.On >= 1 {
		return fmt.Errorf("rule %s: on threshold %.3f outside (0,1)", r.Category, r.On)
	}
	if r.Off <= 0 || r.Off >= 1 {
		return fmt.Errorf("rule %s: off threshold %.3f outside (0,1)", r.Category, r.Off)
	}
	if r.Off >= r.On {
		return fmt.Errorf("rule %s: off %.3f must be below on %.3f", r.Category, r.Off, r.On)
	}
	if r.DebounceSec <= 0 {
		return fmt.Errorf("rule %s: non-positive debounce %.3f", r.Category, r.DebounceSec)
	}
	if r.CooldownSec <= 0 {
		return fmt.Errorf("rule %s: non-positive cooldown %.3f", r.Category, r.CooldownSec)
	}
	if r.FrameHz <= 0 {
		return fmt.Errorf("rule %s: non-positive frame rate %.3f", r.Category, r.FrameHz)
	}
	if r.Windowed {
		if r.WindowSec <= 0 {
			return fmt.Errorf("rule %s: non-positive window %.3f", r.Category, r.WindowSec)
		}
		if r.WindowThresh <= 0 || r.WindowThresh >= 1 {
			return fmt.Errorf("rule %s: window threshold %.3f outside (0,1)", r.Category, r.WindowThresh)
		}
	}
	return nil
}

// Per-tier lookup tables, indexed by sound.Tier. Critical reacts fastest
// and at the lowest thresholds; low is the slowest and strictest.
var (
	onScale  = [sound.NumTiers]float64{sound.TierLow: 1.10, sound.TierMedium: 1.0, sound.TierHigh: 0.95, sound.TierCritical: 0.85}
	offScale = [sound.NumTiers]float64{sound.TierLow: 1.15, sound.TierMedium: 1.0, sound.TierHigh: 0.90, sound.TierCritical: 0.80}

	debounceScale = [sound.NumTiers]float64{sound.TierLow: 1.2, sound.TierMedium: 1.0, sound.TierHigh: 0.8, sound.TierCritical: 0.5}
	cooldownScale = [sound.NumTiers]float64{sound.TierLow: 1.5, sound.TierMedium: 1.0, sound.TierHigh: 0.8, sound.TierCritical: 0.5}

	debounceFloor = [sound.NumTiers]float64{sound.TierLow: 2.0, sound.TierMedium: 1.5, sound.TierHigh: 1.0, sound.TierCritical: 0.5}
	cooldownFloor = [sound.NumTiers]float64{sound.TierLow: 15.0, sound.TierMedium: 10.0, sound.TierHigh: 5.0, sound.TierCritical: 2.0}

	windowSec = [sound.NumTiers]float64{sound.TierLow: 8.0, sound.TierMedium: 5.0, sound.TierHigh: 3.0, sound.TierCritical: 2.0}
)

// Generate derives one rule per catalog category from the level's config.
func Generate(level profile.Level) map[string]Rule {
	cfg := profile.ConfigFor(level)
	out := make(map[string]Rule, len(sound.Categories()))
	for _, cat := range sound.Categories() {
		out[cat] = generateOne(cat, sound.TierOf(cat), cfg)
	}
	return out
}

func generateOne(category string, tier sound.Tier, cfg profile.Config) Rule {
	on := clamp(cfg.BaseOn*onScale[tier], 0.1, 0.95)
	off := clamp(cfg.BaseOff*offScale[tier], 0.05, on-0.1)

	r := Rule{
		Category:    category,
		Tier:        tier,
		On:          on,
		Off:         off,
		DebounceSec: max(cfg.BaseDebounceSec*cfg.TierMultiplier[tier]*debounceScale[tier], debounceFloor[tier]),
		CooldownSec: max(cfg.BaseCooldownSec*cfg.TierMultiplier[tier]*cooldownScale[tier], cooldownFloor[tier]),
		FrameHz:     cfg.FrameHz,
		Windowed:    cfg.Windowed[tier],
	}
	if r.Windowed {
		r.WindowSec = windowSec[tier]
		r.WindowThresh = clamp(cfg.BaseOn*0.9, 0.5, 0.9)
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
