package http

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
	apperrors "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	pollutionSvc pollution.Service
	routingSvc   routing.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(pollutionSvc pollution.Service, routingSvc routing.Service, logger *slog.Logger) *Handler {
	return &Handler{
		pollutionSvc: pollutionSvc,
		routingSvc:   routingSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

type predictQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lon *float64 `form:"lon" binding:"required"`
}

// PredictPollution estimates PM2.5 at a single coordinate.
func (h *Handler) PredictPollution(c *gin.Context) {
	var q predictQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat and lon query parameters are required", err))
		return
	}

	value, err := h.pollutionSvc.PredictAt(c.Request.Context(), *q.Lat, *q.Lon)
	if err != nil {
		status := http.StatusInternalServerError
		code := "predict_failed"
		if apperrors.IsCode(err, "model_unavailable") {
			status = http.StatusServiceUnavailable
			code = "model_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"latitude":      *q.Lat,
		"longitude":     *q.Lon,
		"predictedPm25": round2(value),
	})
}

type routesQuery struct {
	StartLat *float64 `form:"startLat" binding:"required"`
	StartLon *float64 `form:"startLon" binding:"required"`
	EndLat   *float64 `form:"endLat" binding:"required"`
	EndLon   *float64 `form:"endLon" binding:"required"`
}

type routeView struct {
	ID          int          `json:"id"`
	DistanceKm  float64      `json:"distanceKm"`
	DurationMin float64      `json:"durationMin"`
	AvgPm25     float64      `json:"avgPm25"`
	Geometry    [][2]float64 `json:"geometry"`
}

type routesResponse struct {
	Fastest      routeView   `json:"fastest"`
	Cleanest     routeView   `json:"cleanest"`
	SameRoute    bool        `json:"sameRoute"`
	Alternatives []routeView `json:"alternatives"`
}

// PlanRoutes scores driving alternatives between two points and reports the
// fastest and cleanest choices.
func (h *Handler) PlanRoutes(c *gin.Context) {
	var q routesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "startLat, startLon, endLat and endLon query parameters are required", err))
		return
	}

	selection, err := h.routingSvc.Plan(c.Request.Context(), routing.Request{
		StartLat: *q.StartLat,
		StartLon: *q.StartLon,
		EndLat:   *q.EndLat,
		EndLon:   *q.EndLon,
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "routes_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "model_unavailable"):
			status = http.StatusServiceUnavailable
			code = "model_unavailable"
		case apperrors.IsCode(err, "no_routes_available"):
			status = http.StatusNotFound
			code = "no_routes_available"
		case apperrors.IsCode(err, "routing_provider_error"):
			status = http.StatusBadGateway
			code = "routing_provider_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, toRoutesResponse(selection))
}

// RefreshModel rebuilds the pollution field from the configured source.
func (h *Handler) RefreshModel(c *gin.Context) {
	stations, err := h.pollutionSvc.Refresh(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "refresh_failed"
		switch {
		case apperrors.IsCode(err, "invalid_model_input"):
			status = http.StatusUnprocessableEntity
			code = "invalid_model_input"
		case apperrors.IsCode(err, "sample_source_error"):
			status = http.StatusBadGateway
			code = "sample_source_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// Health reports liveness and whether a model is serving.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"modelReady": h.pollutionSvc.Ready(),
	})
}

func toRoutesResponse(sel routing.Selection) routesResponse {
	views := make([]routeView, 0, len(sel.Routes))
	for _, r := range sel.Routes {
		views = append(views, toRouteView(r))
	}
	return routesResponse{
		Fastest:      toRouteView(sel.Fastest),
		Cleanest:     toRouteView(sel.Cleanest),
		SameRoute:    sel.Same,
		Alternatives: views,
	}
}

func toRouteView(r routing.ScoredRoute) routeView {
	return routeView{
		ID:          r.Index,
		DistanceKm:  round2(r.DistanceMeters / 1000),
		DurationMin: round2(r.DurationSeconds / 60),
		AvgPm25:     round2(r.AveragePollution),
		Geometry:    r.Geometry,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
