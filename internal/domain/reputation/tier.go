package reputation

// Tier is an ordered trust classification derived from a user's numeric
// reputation score and verification flag.
type Tier string

const (
	TierUnverified Tier = "unverified"
	TierNew        Tier = "new"
	TierTrusted    Tier = "trusted"
	TierVerified   Tier = "verified"
)

// Score thresholds for tier promotion.
const (
	trustedMinScore = 50
	newMinScore     = 10
)

// Rank returns the tier's position in the strict total order
// unverified < new < trusted < verified. Unknown tiers rank as unverified.
func (t Tier) Rank() int {
	switch t {
	case TierVerified:
		return 3
	case TierTrusted:
		return 2
	case TierNew:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t meets or exceeds the minimum tier.
func (t Tier) AtLeast(min Tier) bool {
	return t.Rank() >= min.Rank()
}

// Reputation is a user's trust record as read from the reputation store.
type Reputation struct {
	UserID     string `json:"user_id"`
	Score      int    `json:"score"`
	IsVerified bool   `json:"is_verified"`
}

// Resolve maps a numeric score and verified flag to a tier. The verified
// flag wins outright; thresholds apply in descending order after that.
func Resolve(score int, isVerified bool) Tier {
	if isVerified {
		return TierVerified
	}
	if score >= trustedMinScore {
		return TierTrusted
	}
	if score >= newMinScore {
		return TierNew
	}
	return TierUnverified
}

// Tier resolves the record's tier.
func (r Reputation) Tier() Tier {
	return Resolve(r.Score, r.IsVerified)
}
