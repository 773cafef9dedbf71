// Package sound defines the shared value types of the alert decision core:
// sound categories, severity tiers, classification frames, and alert events.
package sound

// Tier is the severity bucket assigned to a sound category. Tiers are
// totally ordered by numeric priority: Low < Medium < High < Critical.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierCritical
)

// NumTiers is the count of severity tiers, for tier-indexed lookup tables.
const NumTiers = 4

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier as its lowercase name for JSON payloads.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a lowercase tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	*t = ParseTier(string(b))
	return nil
}

// ParseTier converts a lowercase tier name back into a Tier. Unknown names
// map to TierLow, mirroring the catalog default.
func ParseTier(s string) Tier {
	switch s {
	case "critical":
		return TierCritical
	case "high":
		return TierHigh
	case "medium":
		return TierMedium
	default:
		return TierLow
	}
}

// catalog maps every monitored sound category to its severity tier.
// Unknown labels fall back to TierLow in TierOf.
var catalog = map[string]Tier{
	// life-safety alarms: react immediately
	"smoke_alarm":           TierCritical,
	"carbon_monoxide_alarm": TierCritical,
	"security_alarm":        TierCritical,
	"glass_breaking":        TierCritical,

	"siren":       TierHigh,
	"baby_crying": TierHigh,
	"scream":      TierHigh,
	"gunshot":     TierHigh,

	"doorbell":      TierMedium,
	"knocking":      TierMedium,
	"dog_barking":   TierMedium,
	"phone_ringing": TierMedium,
	"shouting":      TierMedium,
	"car_horn":      TierMedium,

	"snoring":        TierLow,
	"coughing":       TierLow,
	"water_running":  TierLow,
	"appliance_beep": TierLow,
}

// TierOf returns the severity tier for a category label. Labels not in the
// catalog are treated as TierLow.
func TierOf(category string) Tier {
	if t, ok := catalog[category]; ok {
		return t
	}
	return TierLow
}

// Categories returns every catalog category label. The slice is freshly
// allocated; callers may reorder it.
func Categories() []string {
	out := make([]string, 0, len(catalog))
	for c := range catalog {
		out = append(out, c)
	}
	return out
}
