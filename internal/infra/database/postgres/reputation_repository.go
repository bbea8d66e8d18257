package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcferran/sightline/internal/domain/reputation"
)

// ReputationRepository is the pgx-backed reporter reputation store.
type ReputationRepository struct {
	pool *pgxpool.Pool
}

// NewReputationRepository creates the repository.
func NewReputationRepository(pool *pgxpool.Pool) *ReputationRepository {
	return &ReputationRepository{pool: pool}
}

// GetByUserID returns one reporter's reputation, or nil when no record
// exists. Absence is not an error; it resolves to the lowest trust tier.
func (r *ReputationRepository) GetByUserID(ctx context.Context, userID string) (*reputation.Reputation, error) {
	query := `SELECT user_id, score, is_verified FROM user_reputation WHERE user_id = $1`

	var rep reputation.Reputation
	err := r.pool.QueryRow(ctx, query, userID).Scan(&rep.UserID, &rep.Score, &rep.IsVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reputation %s: %w", userID, err)
	}
	return &rep, nil
}

// ListByUserIDs returns the reputations of the given reporters, keyed by
// user id. Reporters without records are absent from the map.
func (r *ReputationRepository) ListByUserIDs(ctx context.Context, userIDs []string) (map[string]reputation.Reputation, error) {
	out := make(map[string]reputation.Reputation)
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `SELECT user_id, score, is_verified FROM user_reputation WHERE user_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list reputations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rep reputation.Reputation
		if err := rows.Scan(&rep.UserID, &rep.Score, &rep.IsVerified); err != nil {
			return nil, fmt.Errorf("scan reputation: %w", err)
		}
		out[rep.UserID] = rep
	}
	return out, rows.Err()
}
