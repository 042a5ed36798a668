package app

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/docstore"
	"skill-match/internal/events"
	"skill-match/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container owns the process-wide connections.
type Container struct {
	Config    config.Config
	Logger    *zap.Logger
	Store     docstore.Store
	Publisher usecase.OpportunityEventPublisher

	// Pinger checks the backing store for /health; nil for the memory backend.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	db     database.DB
	redis  *redis.Client
	events *events.Publisher
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger, Publisher: events.Nop{}}

	if err := c.openStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.NATS.URL != "" {
		pub, err := events.NewPublisher(cfg.NATS, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.events = pub
		c.Publisher = pub
	}

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Config.Store.Backend {
	case config.StoreBackendPostgres:
		dbCtx, cancel := context.WithTimeout(ctx, c.Config.Database.ConnectTimeout)
		defer cancel()

		db, err := dbpostgres.Connect(dbCtx, c.Config.Database)
		if err != nil {
			return err
		}
		c.db = db

		if c.Config.Database.RunMigrations {
			if err := (migration.Runner{Logger: c.Logger.Named("migration")}).Run(ctx, db.SQLDB()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		c.Store = docstore.NewPostgres(db)
		c.Pinger = db

	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		c.redis = client

		store := docstore.NewRedis(client, c.Config.Redis.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		c.Store = store
		c.Pinger = store

	case config.StoreBackendMemory, "":
		c.Store = docstore.NewMemory()

	default:
		return fmt.Errorf("unknown store backend %q", c.Config.Store.Backend)
	}

	c.Logger.Info("document store ready", zap.String("backend", c.Config.Store.Backend))
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.events != nil {
		c.events.Close()
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	return errors.Join(errs...)
}
