package reputation

import "context"

// ReputationRepository reads user trust records.
type ReputationRepository interface {
	// GetByUserID returns a single user's reputation.
	GetByUserID(ctx context.Context, userID string) (*Reputation, error)

	// ListByUserIDs returns reputations keyed by user id. Users without a
	// record are simply absent from the map.
	ListByUserIDs(ctx context.Context, userIDs []string) (map[string]Reputation, error)
}
