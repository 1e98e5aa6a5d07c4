package routing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// Service plans low-pollution routes between two points.
type Service interface {
	Plan(ctx context.Context, req Request) (Selection, error)
}

// RouteFetcher asks the external routing provider for driving alternatives.
// The provider's retry policy, if any, lives behind this interface; the
// service itself never retries.
type RouteFetcher interface {
	Directions(ctx context.Context, start, end Point) ([]Candidate, error)
}

// Cache stores selections keyed by endpoints and model generation.
type Cache interface {
	Get(ctx context.Context, key string) (Selection, bool, error)
	Save(ctx context.Context, key string, sel Selection, ttl time.Duration) error
}

// Request carries the trip endpoints.
type Request struct {
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64
}

// Config tunes scoring and caching.
type Config struct {
	// Resolution is the resampling interval in degrees; zero means
	// DefaultResolution.
	Resolution float64
	// CacheTTL bounds how long a selection may be reused; zero disables
	// expiry on the cache side.
	CacheTTL time.Duration
}

type service struct {
	cfg     Config
	fetcher RouteFetcher
	holder  *pollution.Holder
	cache   Cache
	logger  *slog.Logger
}

// NewService wires up the route planning domain.
func NewService(cfg Config, fetcher RouteFetcher, holder *pollution.Holder, cache Cache, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		holder:  holder,
		cache:   cache,
		logger:  logger.With("component", "routing.service"),
	}
}

func (s *service) Plan(ctx context.Context, req Request) (Selection, error) {
	if err := validateRequest(req); err != nil {
		return Selection{}, err
	}

	field, generation, ok := s.holder.Current()
	if !ok {
		return Selection{}, apperrors.Wrap("model_unavailable", "pollution model has not been built yet", nil)
	}

	key := cacheKey(req, generation)
	if cached, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("route cache lookup failed", "error", err)
	} else if hit {
		s.logger.Debug("route cache hit", "key", key)
		return cached, nil
	}

	candidates, err := s.fetcher.Directions(ctx,
		Point{Lat: req.StartLat, Lon: req.StartLon},
		Point{Lat: req.EndLat, Lon: req.EndLon},
	)
	if err != nil {
		return Selection{}, apperrors.Wrap("routing_provider_error", "failed to fetch routes from provider", err)
	}

	scored, failures := ScoreAll(field, candidates, s.cfg.Resolution)
	for _, failure := range failures {
		s.logger.Warn("rejected malformed route candidate", "index", failure.Index, "error", failure.Err)
	}
	for _, route := range scored {
		if route.SampleCount == 0 {
			s.logger.Warn("route produced no sample points, average defaulted to 0", "index", route.Index)
		}
	}

	selection, err := Select(scored)
	if err != nil {
		return Selection{}, err
	}

	if err := s.cache.Save(ctx, key, selection, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("route cache save failed", "error", err)
	}
	return selection, nil
}

func validateRequest(req Request) error {
	for _, c := range []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"start", req.StartLat, req.StartLon},
		{"end", req.EndLat, req.EndLon},
	} {
		if c.lat < -90 || c.lat > 90 {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("%s latitude %.6f out of range", c.name, c.lat), nil)
		}
		if c.lon < -180 || c.lon > 180 {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("%s longitude %.6f out of range", c.name, c.lon), nil)
		}
	}
	return nil
}

// cacheKey rounds endpoints to ~1 meter so nearby repeat requests share an
// entry, and includes the model generation so stale fields never serve.
func cacheKey(req Request, generation uint64) string {
	return fmt.Sprintf("routes:g%d:%.5f,%.5f:%.5f,%.5f", generation, req.StartLat, req.StartLon, req.EndLat, req.EndLon)
}
