package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments/internal/core/ports"
	"github.com/medconnect/appointments/internal/pkg/metrics"
)

// AvailabilityHandler serves the doctor's availability form and dashboard.
type AvailabilityHandler struct {
	service ports.AvailabilityService
}

func NewAvailabilityHandler(service ports.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Submit publishes a new availability slot for the signed-in doctor. The
// body is either the HTML form (date, start_time, end_time) or the same
// fields as JSON. Every outcome is rendered as {message, error}.
//
// @Summary      Add availability
// @Tags         availability
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      slotRequest  true  "Slot date and times in the clinic timezone"
// @Success      201   {object}  submissionResponse
// @Failure      401   {object}  submissionResponse
// @Failure      403   {object}  submissionResponse
// @Failure      409   {object}  submissionResponse
// @Failure      422   {object}  submissionResponse
// @Failure      500   {object}  submissionResponse
// @Router       /v1/doctor/availability [post]
func (h *AvailabilityHandler) Submit(c echo.Context) error {
	var req slotRequest
	// An unreadable body is submitted as empty fields so the flow still
	// reports authentication and role failures first.
	_ = c.Bind(&req)

	result := h.service.Submit(c.Request().Context(), toSlotForm(req))
	metrics.AvailabilitySubmissionsTotal.WithLabelValues(string(result.Outcome)).Inc()

	return c.JSON(submissionStatus(result.Outcome), toSubmissionResponse(result))
}

// List returns the signed-in doctor's slots ordered by start time.
//
// @Summary      List my availability
// @Tags         availability
// @Produce      json
// @Success      200  {object}  availabilityListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Security     BearerAuth
// @Router       /v1/doctor/availability [get]
func (h *AvailabilityHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	slots, err := h.service.ListForDoctor(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(slots))
}
