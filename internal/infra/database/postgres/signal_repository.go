package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// SignalRepository is the pgx-backed signal store. Target and conditions
// live in JSONB columns; triggers are a text array.
type SignalRepository struct {
	pool *pgxpool.Pool
}

// NewSignalRepository creates the repository.
func NewSignalRepository(pool *pgxpool.Pool) *SignalRepository {
	return &SignalRepository{pool: pool}
}

const signalColumns = `
	id, owner_id, name, target, triggers, conditions, is_active,
	classification, view_count, subscriber_count, sighting_count,
	created_at, updated_at
`

// GetByID returns a single signal.
func (r *SignalRepository) GetByID(ctx context.Context, id string) (*signal.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE id = $1`

	sig, err := scanSignal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, signal.ErrSignalNotFound
		}
		return nil, fmt.Errorf("get signal %s: %w", id, err)
	}
	return sig, nil
}

// ListActive returns all active signals.
func (r *SignalRepository) ListActive(ctx context.Context) ([]*signal.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE is_active ORDER BY created_at`
	return r.listSignals(ctx, query)
}

// ListAll returns every signal regardless of active state.
func (r *SignalRepository) ListAll(ctx context.Context) ([]*signal.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals ORDER BY created_at`
	return r.listSignals(ctx, query)
}

// ListByOwner returns a user's own signals.
func (r *SignalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*signal.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE owner_id = $1 ORDER BY created_at`
	return r.listSignals(ctx, query, ownerID)
}

// ListActivitySnapshots returns daily activity counts for a signal since the
// given time, oldest first.
func (r *SignalRepository) ListActivitySnapshots(ctx context.Context, signalID string, since time.Time) ([]signal.ActivitySnapshot, error) {
	query := `
		SELECT date, activity
		FROM signal_activity
		WHERE signal_id = $1 AND date >= $2
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, signalID, since)
	if err != nil {
		return nil, fmt.Errorf("list activity snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []signal.ActivitySnapshot
	for rows.Next() {
		var snap signal.ActivitySnapshot
		if err := rows.Scan(&snap.Date, &snap.Activity); err != nil {
			return nil, fmt.Errorf("scan activity snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (r *SignalRepository) listSignals(ctx context.Context, query string, args ...interface{}) ([]*signal.Signal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	defer rows.Close()

	var signals []*signal.Signal
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func scanSignal(row pgx.Row) (*signal.Signal, error) {
	var sig signal.Signal
	var targetJSON []byte
	var conditionsJSON []byte
	var triggers []string

	err := row.Scan(
		&sig.ID,
		&sig.OwnerID,
		&sig.Name,
		&targetJSON,
		&triggers,
		&conditionsJSON,
		&sig.IsActive,
		&sig.Classification,
		&sig.Analytics.ViewCount,
		&sig.Analytics.SubscriberCount,
		&sig.Analytics.SightingCount,
		&sig.CreatedAt,
		&sig.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(targetJSON, &sig.Target); err != nil {
		return nil, fmt.Errorf("decode target: %w", err)
	}
	if len(conditionsJSON) > 0 {
		sig.Conditions = &signal.Conditions{}
		if err := json.Unmarshal(conditionsJSON, sig.Conditions); err != nil {
			return nil, fmt.Errorf("decode conditions: %w", err)
		}
	}

	sig.Triggers = make([]sighting.EventType, len(triggers))
	for i, t := range triggers {
		sig.Triggers[i] = sighting.EventType(t)
	}

	return &sig, nil
}
