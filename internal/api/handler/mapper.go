package handler

import (
	"net/http"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.Role(req.Role),
	}
}

func toSlotForm(req slotRequest) domain.SlotFormInput {
	return domain.SlotFormInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		FullName: u.FullName,
	}
}

func toSlotResponse(s *domain.AvailabilitySlot) slotResponse {
	return slotResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsBooked:  s.IsBooked,
	}
}

func toSubmissionResponse(r ports.SubmissionResult) submissionResponse {
	resp := submissionResponse{Message: r.Message, Error: r.Error}
	if r.Slot != nil {
		slot := toSlotResponse(r.Slot)
		resp.Slot = &slot
	}
	return resp
}

func toListResponse(slots []*domain.AvailabilitySlot) availabilityListResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(s))
	}
	return availabilityListResponse{Slots: out}
}

// submissionStatus maps a submission outcome to its HTTP status code.
func submissionStatus(o ports.Outcome) int {
	switch o {
	case ports.OutcomeCreated:
		return http.StatusCreated
	case ports.OutcomeUnauthenticated:
		return http.StatusUnauthorized
	case ports.OutcomeForbidden:
		return http.StatusForbidden
	case ports.OutcomeIncomplete, ports.OutcomeInvalidFormat, ports.OutcomeInvalidRange:
		return http.StatusUnprocessableEntity
	case ports.OutcomeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
