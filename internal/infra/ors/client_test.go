package ors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
)

func TestDirectionsRequestAndDecode(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody directionsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"geometry": {"coordinates": [[77.0266, 28.4595], [77.03, 28.46], [77.089, 28.495]]},
					"properties": {"summary": {"distance": 8123.4, "duration": 1040.2}}
				},
				{
					"geometry": {"coordinates": [[77.0266, 28.4595], [77.089, 28.495]]},
					"properties": {"summary": {"distance": 9050.0, "duration": 980.0}}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "driving-car", 3, time.Second)
	candidates, err := client.Directions(context.Background(),
		routing.Point{Lat: 28.4595, Lon: 77.0266},
		routing.Point{Lat: 28.495, Lon: 77.089},
	)
	require.NoError(t, err)

	require.Equal(t, "/v2/directions/driving-car/geojson", gotPath)
	require.Equal(t, "test-key", gotAuth)
	require.Equal(t, [][2]float64{{77.0266, 28.4595}, {77.089, 28.495}}, gotBody.Coordinates)
	require.NotNil(t, gotBody.AlternativeRoutes)
	require.Equal(t, 3, gotBody.AlternativeRoutes.TargetCount)

	require.Len(t, candidates, 2)
	require.Equal(t, 8123.4, candidates[0].DistanceMeters)
	require.Equal(t, 1040.2, candidates[0].DurationSeconds)
	require.Len(t, candidates[0].Geometry, 3)
	require.Equal(t, [2]float64{77.0266, 28.4595}, candidates[0].Geometry[0])
	require.Equal(t, 980.0, candidates[1].DurationSeconds)
}

func TestDirectionsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", 0, 0)
	_, err := client.Directions(context.Background(), routing.Point{}, routing.Point{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=403")
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestDirectionsSingleAlternativeOmitsBlock(t *testing.T) {
	var gotBody directionsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "driving-car", 1, time.Second)
	candidates, err := client.Directions(context.Background(), routing.Point{Lat: 1, Lon: 2}, routing.Point{Lat: 3, Lon: 4})
	require.NoError(t, err)
	require.Empty(t, candidates)
	require.Nil(t, gotBody.AlternativeRoutes)
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("", "", "", 0, 0)
	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Equal(t, defaultProfile, client.profile)
	require.Equal(t, defaultAlternatives, client.alternatives)
	require.Equal(t, defaultTimeout, client.httpClient.Timeout)
}
