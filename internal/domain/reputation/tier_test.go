package reputation

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		isVerified bool
		want       Tier
	}{
		{"verified flag wins", 0, true, TierVerified},
		{"verified flag beats high score", 100, true, TierVerified},
		{"trusted at threshold", 50, false, TierTrusted},
		{"trusted above threshold", 80, false, TierTrusted},
		{"new at threshold", 10, false, TierNew},
		{"new below trusted", 49, false, TierNew},
		{"unverified below new", 9, false, TierUnverified},
		{"unverified at zero", 0, false, TierUnverified},
		{"unverified negative", -5, false, TierUnverified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.score, tt.isVerified); got != tt.want {
				t.Errorf("Resolve(%d, %v) = %s, want %s", tt.score, tt.isVerified, got, tt.want)
			}
		})
	}
}

func TestTierOrder(t *testing.T) {
	order := []Tier{TierUnverified, TierNew, TierTrusted, TierVerified}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Expected %s > %s", order[i], order[i-1])
		}
	}

	if !TierTrusted.AtLeast(TierNew) {
		t.Error("trusted should satisfy a minimum of new")
	}
	if TierNew.AtLeast(TierTrusted) {
		t.Error("new should not satisfy a minimum of trusted")
	}
	if !TierVerified.AtLeast(TierVerified) {
		t.Error("a tier should satisfy itself as minimum")
	}

	// Unknown tiers rank as unverified
	if Tier("moderator").Rank() != TierUnverified.Rank() {
		t.Error("unknown tier should rank as unverified")
	}
}
