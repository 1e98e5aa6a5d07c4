package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/config"
	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

type stubPollution struct {
	predictFn func(ctx context.Context, lat, lon float64) (float64, error)
	refreshFn func(ctx context.Context) (int, error)
	ready     bool
}

func (s *stubPollution) PredictAt(ctx context.Context, lat, lon float64) (float64, error) {
	if s.predictFn != nil {
		return s.predictFn(ctx, lat, lon)
	}
	return 0, nil
}

func (s *stubPollution) Refresh(ctx context.Context) (int, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx)
	}
	return 0, nil
}

func (s *stubPollution) Ready() bool { return s.ready }

type stubRouting struct {
	planFn func(ctx context.Context, req routing.Request) (routing.Selection, error)
}

func (s *stubRouting) Plan(ctx context.Context, req routing.Request) (routing.Selection, error) {
	if s.planFn != nil {
		return s.planFn(ctx, req)
	}
	return routing.Selection{}, nil
}

func newRouterUnderTest(t *testing.T, pollutionSvc pollution.Service, routingSvc routing.Service) http.Handler {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    config.RateLimitConfig{Enabled: false},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(pollutionSvc, routingSvc, logger)
	return NewRouter(cfg, handler).Handler
}

func performGet(target string, router http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func performPost(target string, router http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]any {
	t.Helper()
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRouter_PredictSuccess(t *testing.T) {
	svc := &stubPollution{
		predictFn: func(_ context.Context, lat, lon float64) (float64, error) {
			require.Equal(t, 28.4595, lat)
			require.Equal(t, 77.0266, lon)
			return 182.446, nil
		},
		ready: true,
	}

	recorder := performGet("/api/v1/pollution?lat=28.4595&lon=77.0266", newRouterUnderTest(t, svc, &stubRouting{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 28.4595, got["latitude"])
	require.Equal(t, 77.0266, got["longitude"])
	require.Equal(t, 182.45, got["predictedPm25"])
}

func TestRouter_PredictMissingParams(t *testing.T) {
	recorder := performGet("/api/v1/pollution?lat=28.4595", newRouterUnderTest(t, &stubPollution{}, &stubRouting{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_PredictModelUnavailable(t *testing.T) {
	svc := &stubPollution{
		predictFn: func(_ context.Context, _, _ float64) (float64, error) {
			return 0, apperrors.Wrap("model_unavailable", "pollution model has not been built yet", nil)
		},
	}

	recorder := performGet("/api/v1/pollution?lat=1&lon=2", newRouterUnderTest(t, svc, &stubRouting{}))
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "model_unavailable", errBody["error"]["code"])
}

func TestRouter_RoutesSuccess(t *testing.T) {
	fast := routing.ScoredRoute{
		Candidate: routing.Candidate{
			Geometry:        [][2]float64{{77.0, 28.0}, {77.0, 28.01}},
			DistanceMeters:  8123.4,
			DurationSeconds: 984,
		},
		Index:            1,
		AveragePollution: 42.456,
		SampleCount:      11,
	}
	svc := &stubRouting{
		planFn: func(_ context.Context, req routing.Request) (routing.Selection, error) {
			require.Equal(t, 28.0, req.StartLat)
			require.Equal(t, 77.0, req.StartLon)
			return routing.Selection{Fastest: fast, Cleanest: fast, Same: true, Routes: []routing.ScoredRoute{fast}}, nil
		},
	}

	recorder := performGet("/api/v1/routes?startLat=28.0&startLon=77.0&endLat=28.01&endLon=77.0", newRouterUnderTest(t, &stubPollution{}, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got routesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.True(t, got.SameRoute)
	require.Equal(t, 1, got.Fastest.ID)
	require.Equal(t, 8.12, got.Fastest.DistanceKm)
	require.Equal(t, 16.4, got.Fastest.DurationMin)
	require.Equal(t, 42.46, got.Fastest.AvgPm25)
	require.Len(t, got.Alternatives, 1)
}

func TestRouter_RoutesNotFound(t *testing.T) {
	svc := &stubRouting{
		planFn: func(_ context.Context, _ routing.Request) (routing.Selection, error) {
			return routing.Selection{}, apperrors.Wrap("no_routes_available", "no candidate routes to select from", nil)
		},
	}

	recorder := performGet("/api/v1/routes?startLat=1&startLon=2&endLat=3&endLon=4", newRouterUnderTest(t, &stubPollution{}, svc))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "no_routes_available", errBody["error"]["code"])
}

func TestRouter_RoutesProviderError(t *testing.T) {
	svc := &stubRouting{
		planFn: func(_ context.Context, _ routing.Request) (routing.Selection, error) {
			return routing.Selection{}, apperrors.Wrap("routing_provider_error", "failed to fetch routes from provider", nil)
		},
	}

	recorder := performGet("/api/v1/routes?startLat=1&startLon=2&endLat=3&endLon=4", newRouterUnderTest(t, &stubPollution{}, svc))
	require.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestRouter_RoutesMissingParams(t *testing.T) {
	recorder := performGet("/api/v1/routes?startLat=1", newRouterUnderTest(t, &stubPollution{}, &stubRouting{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_RefreshSuccess(t *testing.T) {
	svc := &stubPollution{
		refreshFn: func(_ context.Context) (int, error) { return 37, nil },
	}

	recorder := performPost("/api/v1/refresh", newRouterUnderTest(t, svc, &stubRouting{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]int
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 37, got["stations"])
}

func TestRouter_RefreshInvalidDataset(t *testing.T) {
	svc := &stubPollution{
		refreshFn: func(_ context.Context) (int, error) {
			return 0, apperrors.Wrap("invalid_model_input", "sensor sample set cannot be empty", nil)
		},
	}

	recorder := performPost("/api/v1/refresh", newRouterUnderTest(t, svc, &stubRouting{}))
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_model_input", errBody["error"]["code"])
}

func TestRouter_Health(t *testing.T) {
	recorder := performGet("/healthz", newRouterUnderTest(t, &stubPollution{ready: true}, &stubRouting{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "ok", got["status"])
	require.Equal(t, true, got["modelReady"])
}

func TestRouter_RequestIDHeader(t *testing.T) {
	recorder := performGet("/healthz", newRouterUnderTest(t, &stubPollution{}, &stubRouting{}))
	require.NotEmpty(t, recorder.Header().Get("X-Request-Id"))
}
