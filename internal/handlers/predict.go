package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"stock-predictor-api/internal/models"
	"stock-predictor-api/internal/services"
)

type PredictHandler struct {
	service *services.PredictionService
	timeout time.Duration
}

func NewPredictHandler(service *services.PredictionService, timeout time.Duration) *PredictHandler {
	return &PredictHandler{
		service: service,
		timeout: timeout,
	}
}

// Predict handles GET /predict?ticker=<string>&days=<int>
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	// days defaults only when absent; days= present but empty must fail
	// the integer parse.
	rawDays := services.DefaultDays
	if c.Context().QueryArgs().Has("days") {
		rawDays = c.Query("days")
	}

	resp, err := h.service.Predict(ctx, c.Query("ticker"), rawDays)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(resp)
}

// statusForError maps pipeline errors to HTTP status codes: validation
// failures to 400, an empty history to 404, collaborator failures to 500.
func statusForError(err error) int {
	var clientErr *services.ClientError
	if errors.As(err, &clientErr) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, services.ErrNoData) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// CustomErrorHandler handles errors surfaced by Fiber itself (bad routes,
// body limits) outside the prediction pipeline.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
	})
}
