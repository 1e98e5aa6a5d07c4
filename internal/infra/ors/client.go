// Package ors is a minimal OpenRouteService directions client.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
)

const (
	defaultBaseURL      = "https://api.openrouteservice.org"
	defaultProfile      = "driving-car"
	defaultAlternatives = 3
	defaultTimeout      = 10 * time.Second
)

// Client requests driving alternatives between two points. It performs no
// retries; transient provider failures surface to the caller.
type Client struct {
	baseURL      string
	apiKey       string
	profile      string
	alternatives int
	httpClient   *http.Client
}

// NewClient builds an API client. Empty or zero arguments fall back to the
// public endpoint, the driving-car profile, 3 alternatives and a 10s timeout.
func NewClient(baseURL, apiKey, profile string, alternatives int, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if strings.TrimSpace(profile) == "" {
		profile = defaultProfile
	}
	if alternatives <= 0 {
		alternatives = defaultAlternatives
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:      strings.TrimRight(base, "/"),
		apiKey:       apiKey,
		profile:      profile,
		alternatives: alternatives,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Directions fetches up to the configured number of alternative routes.
func (c *Client) Directions(ctx context.Context, start, end routing.Point) ([]routing.Candidate, error) {
	payload := directionsRequest{
		Coordinates: [][2]float64{
			{start.Lon, start.Lat},
			{end.Lon, end.Lat},
		},
	}
	if c.alternatives > 1 {
		payload.AlternativeRoutes = &alternativeRoutes{TargetCount: c.alternatives}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build directions request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("directions request error: status=%d body=%s", resp.StatusCode, string(detail))
	}

	var collection featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	candidates := make([]routing.Candidate, 0, len(collection.Features))
	for _, feature := range collection.Features {
		geometry := make([][2]float64, 0, len(feature.Geometry.Coordinates))
		for _, vertex := range feature.Geometry.Coordinates {
			if len(vertex) < 2 {
				continue
			}
			geometry = append(geometry, [2]float64{vertex[0], vertex[1]})
		}
		candidates = append(candidates, routing.Candidate{
			Geometry:        geometry,
			DistanceMeters:  feature.Properties.Summary.Distance,
			DurationSeconds: feature.Properties.Summary.Duration,
		})
	}
	return candidates, nil
}

type directionsRequest struct {
	Coordinates       [][2]float64       `json:"coordinates"`
	AlternativeRoutes *alternativeRoutes `json:"alternative_routes,omitempty"`
}

type alternativeRoutes struct {
	TargetCount int `json:"target_count"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"properties"`
}

var _ routing.RouteFetcher = (*Client)(nil)
