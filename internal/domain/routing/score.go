package routing

import (
	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// Predictor is the pollution field query used while scoring. Implementations
// must be safe for concurrent calls.
type Predictor interface {
	Predict(lat, lon float64) float64
}

// ScoreRoute resamples one candidate and averages the field prediction over
// its sample points. Structural validation failures are returned as
// malformed_route errors.
func ScoreRoute(field Predictor, c Candidate, index int, resolution float64) (ScoredRoute, error) {
	if err := c.Validate(); err != nil {
		return ScoredRoute{}, err
	}

	points := Resample(c.Geometry, resolution)
	scored := ScoredRoute{Candidate: c, Index: index, SampleCount: len(points)}
	if len(points) == 0 {
		// Cannot happen for validated geometry, but keep the average well
		// defined instead of dividing by zero. SampleCount == 0 lets the
		// caller flag it.
		return scored, nil
	}

	var sum float64
	for _, p := range points {
		sum += field.Predict(p.Lat, p.Lon)
	}
	scored.AveragePollution = sum / float64(len(points))
	return scored, nil
}

// ScoreAll scores every candidate, isolating failures: a malformed candidate
// is reported in the second return value and does not abort the rest of the
// batch.
func ScoreAll(field Predictor, candidates []Candidate, resolution float64) ([]ScoredRoute, []CandidateError) {
	scored := make([]ScoredRoute, 0, len(candidates))
	var failures []CandidateError
	for i, c := range candidates {
		route, err := ScoreRoute(field, c, i, resolution)
		if err != nil {
			failures = append(failures, CandidateError{Index: i, Err: err})
			continue
		}
		scored = append(scored, route)
	}
	return scored, failures
}

// Select picks the minimum-duration and minimum-pollution routes. Ties keep
// the first-seen candidate, so identical input order always yields the same
// selection. An empty set fails with code no_routes_available.
func Select(routes []ScoredRoute) (Selection, error) {
	if len(routes) == 0 {
		return Selection{}, apperrors.Wrap("no_routes_available", "no candidate routes to select from", nil)
	}

	fastest := routes[0]
	cleanest := routes[0]
	for _, r := range routes[1:] {
		if r.DurationSeconds < fastest.DurationSeconds {
			fastest = r
		}
		if r.AveragePollution < cleanest.AveragePollution {
			cleanest = r
		}
	}

	return Selection{
		Fastest:  fastest,
		Cleanest: cleanest,
		Same:     fastest.Index == cleanest.Index,
		Routes:   routes,
	}, nil
}
