package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcferran/sightline/internal/domain/geofence"
)

// GeofenceRepository is the pgx-backed geofence store. Polygons are stored
// as JSONB vertex arrays.
type GeofenceRepository struct {
	pool *pgxpool.Pool
}

// NewGeofenceRepository creates the repository.
func NewGeofenceRepository(pool *pgxpool.Pool) *GeofenceRepository {
	return &GeofenceRepository{pool: pool}
}

// GetByID returns a single geofence.
func (r *GeofenceRepository) GetByID(ctx context.Context, id string) (*geofence.Geofence, error) {
	query := `SELECT id, name, polygon, visibility, created_at FROM geofences WHERE id = $1`

	gf, err := scanGeofence(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, geofence.ErrGeofenceNotFound
		}
		return nil, fmt.Errorf("get geofence %s: %w", id, err)
	}
	return gf, nil
}

// ListAll returns every geofence.
func (r *GeofenceRepository) ListAll(ctx context.Context) ([]*geofence.Geofence, error) {
	query := `SELECT id, name, polygon, visibility, created_at FROM geofences ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	defer rows.Close()

	var geofences []*geofence.Geofence
	for rows.Next() {
		gf, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan geofence: %w", err)
		}
		geofences = append(geofences, gf)
	}
	return geofences, rows.Err()
}

func scanGeofence(row pgx.Row) (*geofence.Geofence, error) {
	var gf geofence.Geofence
	var polygonJSON []byte

	err := row.Scan(&gf.ID, &gf.Name, &polygonJSON, &gf.Visibility, &gf.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(polygonJSON, &gf.Polygon); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	return &gf, nil
}
