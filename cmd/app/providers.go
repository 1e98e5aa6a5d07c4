package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/aqcsv"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/config"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/ors"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/routecache"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/sensorrepo"
)

func providePollutionConfig(cfg *config.Config) pollution.Config {
	return pollution.Config{
		Epsilon:       cfg.AirQuality.Epsilon,
		MinSeparation: cfg.AirQuality.MinSeparation,
	}
}

func provideHolder() *pollution.Holder {
	return pollution.NewHolder()
}

// provideSampleSource prefers postgres when a DSN is configured and
// reachable, otherwise the CSV file.
func provideSampleSource(cfg *config.Config, logger *slog.Logger) pollution.SampleSource {
	csvSource := aqcsv.NewSource(cfg.AirQuality.CSVPath, logger)
	dsn := strings.TrimSpace(cfg.AirQuality.Postgres.DSN)
	if dsn == "" {
		logger.Info("sensor postgres dsn not set, using csv source", "path", cfg.AirQuality.CSVPath)
		return csvSource
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using csv source", "error", err)
		return csvSource
	}
	if cfg.AirQuality.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.AirQuality.Postgres.MaxConns
	}
	if cfg.AirQuality.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.AirQuality.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using csv source", "error", err)
		return csvSource
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using csv source", "error", err)
		pool.Close()
		return csvSource
	}
	logger.Info("sensor postgres source enabled")
	return sensorrepo.NewPostgresRepository(pool)
}

func provideRoutingConfig(cfg *config.Config) routing.Config {
	return routing.Config{
		Resolution: cfg.Routing.ResolutionDegrees,
		CacheTTL:   cfg.Routing.CacheTTL,
	}
}

func provideORSClient(cfg *config.Config) *ors.Client {
	return ors.NewClient(cfg.Routing.BaseURL, cfg.Routing.APIKey, cfg.Routing.Profile, cfg.Routing.Alternatives, cfg.Routing.Timeout)
}

func provideRouteCache(cfg *config.Config, logger *slog.Logger) routing.Cache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return routecache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return routecache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey route cache enabled", "addr", cfg.Cache.Addr)
			return routecache.NewValkeyStore(client, "clearsky")
		}
	}
	return routecache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
