package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/distancer/internal/geocoding"
	"github.com/UnknownOlympus/distancer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluator is the operation exposed to HTTP callers.
type Evaluator interface {
	Evaluate(ctx context.Context, address string) (*service.Evaluation, error)
}

// Handler serves the distance endpoint.
type Handler struct {
	log       *slog.Logger
	evaluator Evaluator
}

// NewHandler creates a Handler backed by the given evaluator.
func NewHandler(log *slog.Logger, evaluator Evaluator) *Handler {
	return &Handler{log: log, evaluator: evaluator}
}

// NewRouter wires the distance, health and metrics endpoints into a gin engine.
func NewRouter(log *slog.Logger, evaluator Evaluator, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handler := NewHandler(log, evaluator)
	router.GET("/", handler.Distance)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

// Distance handles GET /?address=... and answers with a short HTML fragment.
func (h *Handler) Distance(c *gin.Context) {
	address := c.Query("address")

	evaluation, err := h.evaluator.Evaluate(c.Request.Context(), address)
	if err != nil {
		status, message := errorResponse(err, address)
		if status == http.StatusInternalServerError {
			h.log.ErrorContext(c.Request.Context(), "Unexpected evaluation failure", "address", address, "error", err)
		}
		c.String(status, message)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(FormatEvaluation(evaluation)))
}

// FormatEvaluation renders the human-readable answer. The distance is rounded to two decimals here only.
func FormatEvaluation(evaluation *service.Evaluation) string {
	if evaluation.WithinBoundary() {
		return "The address is located in MKAD"
	}

	return fmt.Sprintf("The distance from MKAD is <b><u>%.2f km</u></b>", evaluation.DistanceKm)
}

// errorResponse maps an evaluation failure to a status and a caller-facing message.
// Only sentinel texts are exposed; provider details stay in the server log.
func errorResponse(err error, address string) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingAddress):
		return http.StatusNotFound, "No input address was found"
	case errors.Is(err, geocoding.ErrAddressNotFound):
		return http.StatusNotFound, geocoding.ErrAddressNotFound.Error() + " " + address
	case errors.Is(err, geocoding.ErrProviderUnreachable):
		return http.StatusBadRequest, geocoding.ErrProviderUnreachable.Error()
	case errors.Is(err, geocoding.ErrMalformedResponse):
		return http.StatusBadGateway, geocoding.ErrMalformedResponse.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
