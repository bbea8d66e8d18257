package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog/log"

	"github.com/jmcferran/sightline/internal/pkg/config"
	applogger "github.com/jmcferran/sightline/internal/pkg/logger"
)

// Pool wraps pgxpool.Pool
type Pool struct {
	*pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool
// SSOT: connection info comes from config.Database.URL only
func NewPool(ctx context.Context, cfg *config.Config) (*Pool, error) {
	log.Info().Msg("Connecting to PostgreSQL...")

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Query logging goes to its own rotated file when file logging is on.
	if cfg.Logging.FileEnabled {
		queryLogger := applogger.NewQueryLogger(
			cfg.Logging.FilePath,
			cfg.Logging.RotationSize,
			cfg.Logging.RetentionDays,
		)

		logLevel := tracelog.LogLevelDebug
		if cfg.Logging.Level == "info" {
			logLevel = tracelog.LogLevelInfo
		} else if cfg.Logging.Level == "warn" {
			logLevel = tracelog.LogLevelWarn
		}
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   NewPgxZerologAdapter(queryLogger),
			LogLevel: logLevel,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Ping to verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("✅ PostgreSQL connected successfully")

	if err := checkCoreTables(ctx, pool); err != nil {
		log.Warn().Err(err).Msg("Core table check failed, but continuing...")
	}

	return &Pool{Pool: pool}, nil
}

// checkCoreTables verifies that the tables the read paths depend on exist.
func checkCoreTables(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Checking core tables...")

	tables := []string{"signals", "sightings", "sighting_types", "geofences"}
	for _, table := range tables {
		var regclass *string
		err := pool.QueryRow(ctx, `SELECT to_regclass($1)::text`, table).Scan(&regclass)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}

		if regclass == nil {
			log.Warn().
				Str("table", table).
				Msg("⚠️  Table does not exist (will be created by migrations)")
		}
	}

	log.Info().Msg("✅ Database connection OK")
	return nil
}

// Close closes the connection pool
func (p *Pool) Close() {
	log.Info().Msg("Closing PostgreSQL connection pool...")
	p.Pool.Close()
}
