package pollution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// DefaultEpsilon is the inverse multiquadric shape parameter used when the
// configuration does not override it.
const DefaultEpsilon = 0.1

// Field estimates PM2.5 at arbitrary coordinates from scattered station
// samples using radial basis function interpolation with an inverse
// multiquadric basis, phi(r) = 1/sqrt(r^2 + epsilon^2).
//
// Distances are Euclidean in (latitude, longitude) degree space. That is a
// flat-plane approximation with no geodesic correction and is only reasonable
// over a single city or region; it matches the resolution used by route
// resampling so the two stay dimensionally consistent.
//
// A Field is immutable once built and safe for concurrent Predict calls.
type Field struct {
	samples []SensorSample
	weights []float64
	epsilon float64
}

// NewField fits the interpolation weights so the field reproduces every
// sample's exact value at its own location. It fails with code
// invalid_model_input when the sample set is empty, contains duplicate
// locations, or yields a singular weight system. Callers are expected to
// deduplicate beforehand (see DedupeLocations); the model does not do it
// defensively.
func NewField(samples []SensorSample, epsilon float64) (*Field, error) {
	if len(samples) == 0 {
		return nil, apperrors.Wrap("invalid_model_input", "sensor sample set cannot be empty", nil)
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	seen := make(map[[2]float64]string, len(samples))
	for _, s := range samples {
		key := [2]float64{s.Latitude, s.Longitude}
		if other, ok := seen[key]; ok {
			return nil, apperrors.Wrap("invalid_model_input",
				fmt.Sprintf("stations %q and %q share location (%.6f, %.6f)", other, s.Station, s.Latitude, s.Longitude), nil)
		}
		seen[key] = s.Station
	}

	n := len(samples)
	m := mat.NewDense(n, n, nil)
	values := make([]float64, n)
	for i, si := range samples {
		values[i] = si.Value
		for j, sj := range samples {
			r := euclidean(si.Latitude, si.Longitude, sj.Latitude, sj.Longitude)
			m.Set(i, j, invMultiquadric(r, epsilon))
		}
	}

	var w mat.VecDense
	if err := w.SolveVec(m, mat.NewVecDense(n, values)); err != nil {
		return nil, apperrors.Wrap("invalid_model_input", "sample locations produce a singular interpolation system", err)
	}

	owned := make([]SensorSample, n)
	copy(owned, samples)
	weights := make([]float64, n)
	copy(weights, w.RawVector().Data)

	return &Field{samples: owned, weights: weights, epsilon: epsilon}, nil
}

// Predict returns the interpolated PM2.5 estimate at the given coordinate.
// The coordinate may lie outside the convex hull of the stations; estimates
// degrade with distance from the data. The basis is not range preserving, so
// extrapolated values can be negative or exceed every observed reading. That
// is expected behavior, not clamped.
func (f *Field) Predict(lat, lon float64) float64 {
	var sum float64
	for i, s := range f.samples {
		r := euclidean(lat, lon, s.Latitude, s.Longitude)
		sum += f.weights[i] * invMultiquadric(r, f.epsilon)
	}
	return sum
}

// Stations reports how many samples back the field.
func (f *Field) Stations() int {
	return len(f.samples)
}

func invMultiquadric(r, epsilon float64) float64 {
	return 1 / math.Sqrt(r*r+epsilon*epsilon)
}

func euclidean(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
