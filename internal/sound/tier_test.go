package sound

import "testing"

func TestTierOf_KnownCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		want     Tier
	}{
		{"smoke_alarm", TierCritical},
		{"carbon_monoxide_alarm", TierCritical},
		{"glass_breaking", TierCritical},
		{"siren", TierHigh},
		{"baby_crying", TierHigh},
		{"doorbell", TierMedium},
		{"dog_barking", TierMedium},
		{"snoring", TierLow},
		{"coughing", TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			t.Parallel()

			if got := TierOf(tt.category); got != tt.want {
				t.Errorf("TierOf(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestTierOf_UnknownDefaultsToLow(t *testing.T) {
	t.Parallel()

	if got := TierOf("theremin"); got != TierLow {
		t.Errorf("TierOf(unknown) = %v, want %v", got, TierLow)
	}
	if got := TierOf(""); got != TierLow {
		t.Errorf("TierOf(empty) = %v, want %v", got, TierLow)
	}
}

func TestTier_Ordering(t *testing.T) {
	t.Parallel()

	if !(TierLow < TierMedium && TierMedium < TierHigh && TierHigh < TierCritical) {
		t.Error("tiers are not totally ordered low < medium < high < critical")
	}
}

func TestTier_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tier := range []Tier{TierLow, TierMedium, TierHigh, TierCritical} {
		if got := ParseTier(tier.String()); got != tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tier.String(), got, tier)
		}
	}
	if got := ParseTier("bogus"); got != TierLow {
		t.Errorf("ParseTier(bogus) = %v, want %v", got, TierLow)
	}
}

func TestTier_MarshalText(t *testing.T) {
	t.Parallel()

	b, err := TierCritical.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "critical" {
		t.Errorf("MarshalText = %q, want %q", b, "critical")
	}

	var tier Tier
	if err := tier.UnmarshalText([]byte("high")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if tier != TierHigh {
		t.Errorf("UnmarshalText(high) = %v, want %v", tier, TierHigh)
	}
}

func TestCategories_CoversCatalog(t *testing.T) {
	t.Parallel()

	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("empty catalog")
	}

	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}

	// the returned slice must be a copy
	cats[0] = "mutated"
	for _, c := range Categories() {
		if c == "mutated" {
			t.Error("Categories returned a shared slice")
		}
	}
}
