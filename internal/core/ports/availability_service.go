package ports

import (
	"context"

	"github.com/medconnect/appointments/internal/core/domain"
)

// Outcome classifies a submission result.
type Outcome string

const (
	OutcomeCreated         Outcome = "created"
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomeForbidden       Outcome = "forbidden"
	OutcomeIncomplete      Outcome = "incomplete"
	OutcomeInvalidFormat   Outcome = "invalid_format"
	OutcomeInvalidRange    Outcome = "invalid_range"
	OutcomeConflict        Outcome = "conflict"
	OutcomeStoreError      Outcome = "store_error"
)

// SubmissionResult is what the availability form renders after a submit.
// Error is false only for OutcomeCreated.
type SubmissionResult struct {
	Message string
	Error   bool
	Outcome Outcome
	Slot    *domain.AvailabilitySlot
}

// AvailabilityService publishes and lists a doctor's availability.
type AvailabilityService interface {
	// Submit never returns an error: every failure is reported in the result.
	Submit(ctx context.Context, input domain.SlotFormInput) SubmissionResult
	ListForDoctor(ctx context.Context, doctorID string) ([]*domain.AvailabilitySlot, error)
}
