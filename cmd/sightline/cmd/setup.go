package cmd

import (
	"context"
	"fmt"

	"github.com/jmcferran/sightline/internal/infra/database/postgres"
	"github.com/jmcferran/sightline/internal/pkg/config"
	"github.com/jmcferran/sightline/internal/pkg/logger"
	signalsService "github.com/jmcferran/sightline/internal/service/signals"
)

// env bundles the pieces every database-backed subcommand needs.
type env struct {
	cfg  *config.Config
	pool *postgres.Pool
}

func (e *env) close() {
	e.pool.Close()
}

// setupEnv loads config, initializes logging, and connects to the database.
func setupEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if !verbose {
		level = "warn"
	}
	if err := logger.Init(logger.Config{
		Level:       level,
		Format:      "console",
		ServiceName: "sightline-cli",
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &env{cfg: cfg, pool: pool}, nil
}

// newEvaluationService wires the evaluation use-case service from the pool.
func (e *env) newEvaluationService() *signalsService.Service {
	return signalsService.NewService(
		postgres.NewSignalRepository(e.pool.Pool),
		postgres.NewSightingRepository(e.pool.Pool),
		postgres.NewGeofenceRepository(e.pool.Pool),
		postgres.NewReputationRepository(e.pool.Pool),
	)
}
