package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcferran/sightline/internal/domain/viewer"
)

// PreferenceRepository is the pgx-backed store for viewer privacy settings,
// category interactions, and per-signal marks (hidden / pinned /
// unimportant).
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository creates the repository.
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// GetPrivacySettings returns a viewer's opt-in toggles. A viewer with no
// settings row yields ErrSettingsNotFound; callers fall back to the
// privacy-first defaults.
func (r *PreferenceRepository) GetPrivacySettings(ctx context.Context, userID string) (*viewer.PrivacySettings, error) {
	query := `
		SELECT user_id, enable_personalization, enable_location_ranking
		FROM viewer_settings
		WHERE user_id = $1
	`

	var settings viewer.PrivacySettings
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.EnablePersonalization,
		&settings.EnableLocationRanking,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, viewer.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get privacy settings %s: %w", userID, err)
	}
	return &settings, nil
}

// ListCategoryInteractions returns a viewer's strongest category
// engagements, highest weighted score first.
func (r *PreferenceRepository) ListCategoryInteractions(ctx context.Context, userID string, limit int) ([]viewer.CategoryInteraction, error) {
	query := `
		SELECT category_id, click_count, subscription_count
		FROM viewer_category_interactions
		WHERE user_id = $1
		ORDER BY click_count + subscription_count * 5 DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list category interactions: %w", err)
	}
	defer rows.Close()

	var interactions []viewer.CategoryInteraction
	for rows.Next() {
		var in viewer.CategoryInteraction
		if err := rows.Scan(&in.CategoryID, &in.ClickCount, &in.SubscriptionCount); err != nil {
			return nil, fmt.Errorf("scan category interaction: %w", err)
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

// ListHiddenSignalIDs returns the signals a viewer has hidden.
func (r *PreferenceRepository) ListHiddenSignalIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT signal_id FROM viewer_signal_marks WHERE user_id = $1 AND is_hidden`
	return r.listSignalIDs(ctx, query, userID)
}

// ListPinnedSignalIDs returns the signals a viewer has pinned, in pin
// order (oldest pin first). This order decides the top of the feed.
func (r *PreferenceRepository) ListPinnedSignalIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT signal_id FROM viewer_signal_marks
		WHERE user_id = $1 AND pinned_at IS NOT NULL
		ORDER BY pinned_at
	`
	return r.listSignalIDs(ctx, query, userID)
}

// ListUnimportantSignalIDs returns the signals a viewer marked unimportant.
func (r *PreferenceRepository) ListUnimportantSignalIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT signal_id FROM viewer_signal_marks WHERE user_id = $1 AND is_unimportant`
	return r.listSignalIDs(ctx, query, userID)
}

func (r *PreferenceRepository) listSignalIDs(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list signal marks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan signal id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
