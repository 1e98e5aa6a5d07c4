package pollution

import (
	"context"
	"log/slog"

	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// Service owns the pollution model lifecycle: loading samples, rebuilding the
// field, and answering point queries against the active snapshot.
type Service interface {
	Refresh(ctx context.Context) (int, error)
	PredictAt(ctx context.Context, lat, lon float64) (float64, error)
	Ready() bool
}

// SampleSource supplies the latest reading per station with crucial fields
// already present. Sources own their storage format (CSV file, postgres);
// coordinate deduplication happens here, not in the source.
type SampleSource interface {
	Samples(ctx context.Context) ([]SensorSample, error)
}

// Config tunes model construction.
type Config struct {
	// Epsilon is the RBF shape parameter; zero means DefaultEpsilon.
	Epsilon float64
	// MinSeparation optionally drops stations closer than this many degrees
	// to an already retained one. Zero disables the filter.
	MinSeparation float64
}

type service struct {
	cfg    Config
	source SampleSource
	holder *Holder
	logger *slog.Logger
}

// NewService wires up the pollution model domain.
func NewService(cfg Config, source SampleSource, holder *Holder, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		source: source,
		holder: holder,
		logger: logger.With("component", "pollution.service"),
	}
}

// Refresh rebuilds the field from the sample source and atomically publishes
// it. On any failure the previous field keeps serving; the swap only happens
// once construction succeeded. Returns the number of stations retained.
func (s *service) Refresh(ctx context.Context) (int, error) {
	samples, err := s.source.Samples(ctx)
	if err != nil {
		return 0, apperrors.Wrap("sample_source_error", "failed to load sensor samples", err)
	}

	loaded := len(samples)
	samples = DedupeLocations(samples)
	if dropped := loaded - len(samples); dropped > 0 {
		s.logger.Warn("dropped stations sharing exact coordinates", "dropped", dropped)
	}
	if s.cfg.MinSeparation > 0 {
		before := len(samples)
		samples = FilterMinSeparation(samples, s.cfg.MinSeparation)
		if dropped := before - len(samples); dropped > 0 {
			s.logger.Info("dropped stations under minimum separation", "dropped", dropped, "minSeparation", s.cfg.MinSeparation)
		}
	}

	field, err := NewField(samples, s.cfg.Epsilon)
	if err != nil {
		return 0, err
	}

	gen := s.holder.Swap(field)
	s.logger.Info("pollution model rebuilt", "stations", field.Stations(), "generation", gen)
	return field.Stations(), nil
}

// PredictAt queries the active field.
func (s *service) PredictAt(_ context.Context, lat, lon float64) (float64, error) {
	field, _, ok := s.holder.Current()
	if !ok {
		return 0, apperrors.Wrap("model_unavailable", "pollution model has not been built yet", nil)
	}
	return field.Predict(lat, lon), nil
}

// Ready reports whether a field is serving.
func (s *service) Ready() bool {
	_, _, ok := s.holder.Current()
	return ok
}
