// Package persistence selects and opens the configured store driver.
package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/config"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/memory"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/mongodb"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/postgres"
)

// Stores bundles the handles a service needs plus a closer for shutdown.
type Stores struct {
	Driver        string
	Workouts      domain.WorkoutStore
	Consultations domain.ConsultationStore
	// Pool is set for the postgres driver only.
	Pool  *pgxpool.Pool
	close func(ctx context.Context) error
}

// Close releases the underlying connections.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects the store named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.NewStore()
		log.Warn("using in-memory store; data is lost on restart")
		return &Stores{Driver: cfg.StoreDriver, Workouts: store, Consultations: store}, nil

	case config.StoreMongo:
		store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("connected to mongo")
		return &Stores{Driver: cfg.StoreDriver, Workouts: store, Consultations: store, close: store.Close}, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if cfg.PostgresMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		repo := postgres.NewRepository(pool)
		log.Info("connected to postgres")
		return &Stores{
			Driver:        cfg.StoreDriver,
			Workouts:      repo,
			Consultations: repo,
			Pool:          pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
