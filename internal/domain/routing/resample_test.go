package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResampleStraightRoute(t *testing.T) {
	// A straight two-vertex route 0.01 degrees long at resolution 0.001
	// yields n = 10, so 11 evenly spaced points.
	geometry := [][2]float64{
		{77.0, 28.0},
		{77.0, 28.01},
	}

	points := Resample(geometry, 0.001)
	require.Len(t, points, 11)

	require.Equal(t, Point{Lat: 28.0, Lon: 77.0}, points[0])
	require.Equal(t, Point{Lat: 28.01, Lon: 77.0}, points[10])
	for i, p := range points {
		require.InDelta(t, 28.0+0.001*float64(i), p.Lat, 1e-9, "point %d", i)
		require.InDelta(t, 77.0, p.Lon, 1e-9, "point %d", i)
	}
}

func TestResampleShortRouteKeepsEndpoints(t *testing.T) {
	// Path shorter than the resolution: n would be 0, the guard returns the
	// two endpoints instead of dividing by zero.
	geometry := [][2]float64{
		{77.0, 28.0},
		{77.0003, 28.0004},
	}

	points := Resample(geometry, 0.001)
	require.Len(t, points, 2)
	require.Equal(t, Point{Lat: 28.0, Lon: 77.0}, points[0])
	require.Equal(t, Point{Lat: 28.0004, Lon: 77.0003}, points[1])
}

func TestResampleMultiSegment(t *testing.T) {
	// An L-shaped route; total length 0.02, so 21 points, and the corner
	// vertex must lie on the resampled path at the halfway fraction.
	geometry := [][2]float64{
		{77.0, 28.0},
		{77.0, 28.01},
		{77.01, 28.01},
	}

	points := Resample(geometry, 0.001)
	require.Len(t, points, 21)
	require.Equal(t, Point{Lat: 28.0, Lon: 77.0}, points[0])
	require.Equal(t, Point{Lat: 28.01, Lon: 77.01}, points[20])
	require.InDelta(t, 28.01, points[10].Lat, 1e-9)
	require.InDelta(t, 77.0, points[10].Lon, 1e-9)
}

func TestResampleDegenerateInputs(t *testing.T) {
	require.Nil(t, Resample(nil, 0.001))

	points := Resample([][2]float64{{77.0, 28.0}}, 0.001)
	require.Equal(t, []Point{{Lat: 28.0, Lon: 77.0}}, points)

	// Zero-length route: identical endpoints survive the guard.
	points = Resample([][2]float64{{77.0, 28.0}, {77.0, 28.0}}, 0.001)
	require.Len(t, points, 2)
}

func TestResampleDefaultResolution(t *testing.T) {
	geometry := [][2]float64{
		{77.0, 28.0},
		{77.0, 28.01},
	}
	require.Len(t, Resample(geometry, 0), 11)
}
