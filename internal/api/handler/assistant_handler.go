package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
)

const (
	msgInvalidSymptoms  = "Invalid symptoms provided."
	msgConcernsTooShort = "Please provide a more detailed description of your concerns."
	msgTriageFailed     = "Failed to process your request."
	msgSummaryFailed    = "Failed to generate summary."
)

// AssistantHandler exposes the AI helpers to signed-in users.
type AssistantHandler struct {
	service ports.AssistantService
	logger  zerolog.Logger
}

func NewAssistantHandler(service ports.AssistantService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{service: service, logger: logger}
}

// Triage recommends up to three medical specialties for the given symptoms.
//
// @Summary      Symptom triage
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      triageRequest  true  "Free-text symptoms"
// @Success      200   {object}  triageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Security     BearerAuth
// @Router       /api/ai/symptom-triage [post]
func (h *AssistantHandler) Triage(c echo.Context) error {
	var req triageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidSymptoms})
	}

	specialties, err := h.service.RecommendSpecialties(c.Request().Context(), req.Symptoms)
	if err != nil {
		if errors.Is(err, domain.ErrSymptomsTooShort) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidSymptoms})
		}
		h.logger.Error().Err(err).Msg("symptom triage failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgTriageFailed})
	}

	return c.JSON(http.StatusOK, triageResponse{Specialties: specialties})
}

// Summarize condenses a patient's concerns into one sentence for the doctor.
//
// @Summary      Concern summary
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      summaryRequest  true  "Free-text concerns"
// @Success      200   {object}  summaryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Security     BearerAuth
// @Router       /api/ai/generate-summary [post]
func (h *AssistantHandler) Summarize(c echo.Context) error {
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgConcernsTooShort})
	}

	summary, err := h.service.SummarizeConcerns(c.Request().Context(), req.Concerns)
	if err != nil {
		if errors.Is(err, domain.ErrConcernsTooShort) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgConcernsTooShort})
		}
		h.logger.Error().Err(err).Msg("concern summary failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgSummaryFailed})
	}

	return c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}
