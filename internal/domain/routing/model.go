package routing

import (
	"fmt"

	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Candidate is one alternative supplied by the external routing provider.
// Geometry vertices use (longitude, latitude) order, matching GeoJSON.
// Distance and duration come precomputed from the provider and are treated
// as opaque beyond structural validation.
type Candidate struct {
	Geometry        [][2]float64 `json:"geometry"`
	DistanceMeters  float64      `json:"distanceMeters"`
	DurationSeconds float64      `json:"durationSeconds"`
}

// Validate checks structure only: at least two vertices and non-negative
// numeric fields. Violations carry code malformed_route so a single bad
// candidate can be rejected without failing the batch.
func (c Candidate) Validate() error {
	if len(c.Geometry) < 2 {
		return apperrors.Wrap("malformed_route", fmt.Sprintf("route geometry needs at least 2 vertices, got %d", len(c.Geometry)), nil)
	}
	if c.DistanceMeters < 0 {
		return apperrors.Wrap("malformed_route", fmt.Sprintf("route distance cannot be negative, got %f", c.DistanceMeters), nil)
	}
	if c.DurationSeconds < 0 {
		return apperrors.Wrap("malformed_route", fmt.Sprintf("route duration cannot be negative, got %f", c.DurationSeconds), nil)
	}
	return nil
}

// ScoredRoute is a candidate annotated with its exposure score.
type ScoredRoute struct {
	Candidate
	// Index is the candidate's position in the provider response, used as a
	// stable identifier and for first-seen tie-breaking.
	Index int `json:"index"`
	// AveragePollution is the mean predicted PM2.5 over the resampled path.
	AveragePollution float64 `json:"averagePollution"`
	// SampleCount records how many field queries backed the average. Zero
	// means the defensive empty-resample guard fired and the average
	// defaulted to 0.
	SampleCount int `json:"sampleCount"`
}

// Selection is the ranking result over one batch of scored routes.
// Fastest and Cleanest may be the same route; Same makes that explicit so
// callers can present a single optimal choice instead of two identical ones.
type Selection struct {
	Fastest  ScoredRoute   `json:"fastest"`
	Cleanest ScoredRoute   `json:"cleanest"`
	Same     bool          `json:"same"`
	Routes   []ScoredRoute `json:"routes"`
}

// CandidateError reports which candidate in a batch failed and why.
type CandidateError struct {
	Index int
	Err   error
}

func (e CandidateError) Error() string {
	return fmt.Sprintf("candidate %d: %v", e.Index, e.Err)
}

func (e CandidateError) Unwrap() error {
	return e.Err
}
