package pollution

import (
	"sort"
	"time"
)

// SensorSample is one station's PM2.5 measurement used to fit the field.
type SensorSample struct {
	Station   string  `json:"station"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Value     float64 `json:"value"`
}

// Reading is a timestamped measurement as delivered by a sample source.
type Reading struct {
	Station    string
	Latitude   float64
	Longitude  float64
	Value      float64
	RecordedAt time.Time
}

// LatestPerStation reduces raw readings to the most recent one per station,
// mirroring how the hourly dataset is collapsed before model fitting.
// Output is sorted by station name so repeated refreshes are deterministic.
func LatestPerStation(readings []Reading) []SensorSample {
	latest := make(map[string]Reading, len(readings))
	for _, r := range readings {
		current, ok := latest[r.Station]
		if !ok || r.RecordedAt.After(current.RecordedAt) {
			latest[r.Station] = r
		}
	}

	samples := make([]SensorSample, 0, len(latest))
	for _, r := range latest {
		samples = append(samples, SensorSample{
			Station:   r.Station,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Value:     r.Value,
		})
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Station < samples[j].Station
	})
	return samples
}

// DedupeLocations drops samples whose exact coordinates were already seen,
// keeping the first occurrence. The interpolation matrix is singular when two
// samples share a location, so this must run before NewField.
func DedupeLocations(samples []SensorSample) []SensorSample {
	seen := make(map[[2]float64]struct{}, len(samples))
	out := make([]SensorSample, 0, len(samples))
	for _, s := range samples {
		key := [2]float64{s.Latitude, s.Longitude}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FilterMinSeparation drops samples closer than minSeparation degrees to an
// already retained sample. Near-duplicate stations make the weight system
// ill-conditioned even when coordinates are not exactly equal; this optional
// pre-filter trades a little coverage for numeric stability.
func FilterMinSeparation(samples []SensorSample, minSeparation float64) []SensorSample {
	if minSeparation <= 0 {
		return samples
	}
	out := make([]SensorSample, 0, len(samples))
	for _, s := range samples {
		tooClose := false
		for _, kept := range out {
			if euclidean(s.Latitude, s.Longitude, kept.Latitude, kept.Longitude) < minSeparation {
				tooClose = true
				break
			}
		}
		if !tooClose {
			out = append(out, s)
		}
	}
	return out
}
