package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcferran/sightline/internal/domain/sighting"
)

// SightingRepository is the pgx-backed read store for sightings, their type
// catalog, and recent score movements.
type SightingRepository struct {
	pool *pgxpool.Pool
}

// NewSightingRepository creates the repository.
func NewSightingRepository(pool *pgxpool.Pool) *SightingRepository {
	return &SightingRepository{pool: pool}
}

const sightingColumns = `
	id, type_id, category_id, lat, lng, importance, score,
	COALESCE(reporter_id, ''), reported_at
`

// GetByID returns a single sighting.
func (r *SightingRepository) GetByID(ctx context.Context, id string) (*sighting.Sighting, error) {
	query := `SELECT ` + sightingColumns + ` FROM sightings WHERE id = $1`

	s, err := scanSighting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sighting.ErrSightingNotFound
		}
		return nil, fmt.Errorf("get sighting %s: %w", id, err)
	}
	return s, nil
}

// ListRecent returns the newest sightings, most recent first.
func (r *SightingRepository) ListRecent(ctx context.Context, limit int) ([]*sighting.Sighting, error) {
	query := `SELECT ` + sightingColumns + ` FROM sightings ORDER BY reported_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sightings: %w", err)
	}
	defer rows.Close()

	var sightings []*sighting.Sighting
	for rows.Next() {
		s, err := scanSighting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		sightings = append(sightings, s)
	}
	return sightings, rows.Err()
}

// ListTypes returns the full sighting type catalog.
func (r *SightingRepository) ListTypes(ctx context.Context) ([]*sighting.SightingType, error) {
	query := `SELECT id, name, COALESCE(tags, '{}') FROM sighting_types ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sighting types: %w", err)
	}
	defer rows.Close()

	var types []*sighting.SightingType
	for rows.Next() {
		var st sighting.SightingType
		if err := rows.Scan(&st.ID, &st.Name, &st.Tags); err != nil {
			return nil, fmt.Errorf("scan sighting type: %w", err)
		}
		types = append(types, &st)
	}
	return types, rows.Err()
}

// ListScoreChanges returns score movements recorded since the given time.
func (r *SightingRepository) ListScoreChanges(ctx context.Context, since time.Time) ([]sighting.ScoreChange, error) {
	query := `
		SELECT sighting_id, previous_score, current_score
		FROM sighting_score_changes
		WHERE changed_at >= $1
		ORDER BY changed_at
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list score changes: %w", err)
	}
	defer rows.Close()

	var changes []sighting.ScoreChange
	for rows.Next() {
		var change sighting.ScoreChange
		if err := rows.Scan(&change.SightingID, &change.Previous, &change.Current); err != nil {
			return nil, fmt.Errorf("scan score change: %w", err)
		}
		changes = append(changes, change)
	}
	return changes, rows.Err()
}

func scanSighting(row pgx.Row) (*sighting.Sighting, error) {
	var s sighting.Sighting
	err := row.Scan(
		&s.ID,
		&s.TypeID,
		&s.CategoryID,
		&s.Location.Lat,
		&s.Location.Lng,
		&s.Importance,
		&s.Score,
		&s.ReporterID,
		&s.ReportedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
