package viewer

// PrivacySettings are a viewer's opt-in toggles for feed ranking inputs.
// When no settings row exists, both toggles default to disabled.
type PrivacySettings struct {
	UserID                string `json:"user_id"`
	EnablePersonalization bool   `json:"enable_personalization"`
	EnableLocationRanking bool   `json:"enable_location_ranking"`
}

// Interaction weights for the category preference score. Subscriptions are
// a far stronger interest signal than clicks.
const (
	clickWeight        = 1
	subscriptionWeight = 5
)

// CategoryInteraction aggregates a viewer's engagement with one category.
type CategoryInteraction struct {
	CategoryID        string `json:"category_id"`
	ClickCount        int    `json:"click_count"`
	SubscriptionCount int    `json:"subscription_count"`
}

// Score returns the weighted click+subscription preference score.
func (i CategoryInteraction) Score() float64 {
	return float64(i.ClickCount*clickWeight + i.SubscriptionCount*subscriptionWeight)
}
