package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
	"github.com/medconnect/appointments/internal/pkg/metrics"
)

const (
	msgNotLoggedIn     = "You must be logged in to add availability."
	msgDoctorsOnly     = "Only doctors can add availability."
	msgIncomplete      = "Please fill out all fields."
	msgInvalidFormat   = "Invalid date or time format."
	msgInvalidRange    = "Start time must be before end time."
	msgDuplicateSlot   = "This time slot is already in your schedule."
	msgStoreFailure    = "Failed to add availability. Please try again."
	msgCreatedTemplate = "Successfully added availability for %s."

	displayDateLayout = "January 2, 2006"
)

type AvailabilityService struct {
	principals ports.PrincipalResolver
	profiles   ports.ProfileRepository
	repo       ports.AvailabilityRepository
	views      ports.ViewCache
	loc        *time.Location
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAvailabilityService wires the submission flow. loc is the clinic
// timezone used to read the form's wall-clock times; nil means UTC.
func NewAvailabilityService(
	principals ports.PrincipalResolver,
	profiles ports.ProfileRepository,
	repo ports.AvailabilityRepository,
	views ports.ViewCache,
	loc *time.Location,
	logger zerolog.Logger,
) *AvailabilityService {
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityService{
		principals: principals,
		profiles:   profiles,
		repo:       repo,
		views:      views,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit validates a doctor's proposed slot and stores it. The checks run in
// order and the first failure is returned: authentication, role, presence,
// format, range, then the store's answer.
func (s *AvailabilityService) Submit(ctx context.Context, in domain.SlotFormInput) ports.SubmissionResult {
	principal, ok := s.principals.CurrentPrincipal(ctx)
	if !ok {
		return reject(ports.OutcomeUnauthenticated, msgNotLoggedIn)
	}

	profile, err := s.profiles.FindProfile(ctx, principal.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		s.logger.Error().Err(err).Str("user_id", principal.ID).Msg("profile lookup failed")
	}
	if err != nil || profile == nil || profile.Role != domain.RoleDoctor {
		return reject(ports.OutcomeForbidden, msgDoctorsOnly)
	}

	req, err := domain.ParseSlotRequest(in, s.loc)
	switch {
	case errors.Is(err, domain.ErrIncompleteSlot):
		return reject(ports.OutcomeIncomplete, msgIncomplete)
	case errors.Is(err, domain.ErrInvalidSlotFormat):
		return reject(ports.OutcomeInvalidFormat, msgInvalidFormat)
	case errors.Is(err, domain.ErrInvalidSlotRange):
		return reject(ports.OutcomeInvalidRange, msgInvalidRange)
	case err != nil:
		return reject(ports.OutcomeInvalidFormat, msgInvalidFormat)
	}

	slot := req.Slot(principal.ID)
	slot.CreatedAt = s.now().UTC()

	if err := s.repo.Insert(ctx, slot); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return reject(ports.OutcomeConflict, msgDuplicateSlot)
		}
		s.logger.Error().Err(err).Str("doctor_id", principal.ID).Msg("failed to add availability")
		return reject(ports.OutcomeStoreError, msgStoreFailure)
	}

	if err := s.views.Invalidate(ctx, domain.DashboardView(principal.ID)); err != nil {
		metrics.ViewInvalidationErrorsTotal.Inc()
		s.logger.Warn().Err(err).Str("doctor_id", principal.ID).Msg("dashboard invalidation failed")
	}

	s.logger.Info().
		Str("doctor_id", principal.ID).
		Str("slot_id", slot.ID).
		Time("start_time", slot.StartTime).
		Msg("availability added")

	return ports.SubmissionResult{
		Message: fmt.Sprintf(msgCreatedTemplate, req.Start.In(s.loc).Format(displayDateLayout)),
		Outcome: ports.OutcomeCreated,
		Slot:    slot,
	}
}

// ListForDoctor returns the doctor's dashboard view, served from the view
// cache when possible. Cache failures fall back to the store and skip the
// cache write.
func (s *AvailabilityService) ListForDoctor(ctx context.Context, doctorID string) ([]*domain.AvailabilitySlot, error) {
	view := domain.DashboardView(doctorID)

	payload, version, found, err := s.views.Get(ctx, view)
	cacheable := err == nil
	switch {
	case err != nil:
		metrics.ViewCacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("view", view).Msg("view cache read failed")
	case found:
		var slots []*domain.AvailabilitySlot
		if err := json.Unmarshal(payload, &slots); err == nil {
			metrics.ViewCacheLookupsTotal.WithLabelValues("hit").Inc()
			return slots, nil
		}
		metrics.ViewCacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Str("view", view).Msg("discarding unreadable cached view")
	default:
		metrics.ViewCacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	slots, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	if slots == nil {
		slots = []*domain.AvailabilitySlot{}
	}

	if !cacheable {
		return slots, nil
	}
	// The version was read before the store, so a submit that lands in
	// between leaves this render under a superseded version.
	if encoded, err := json.Marshal(slots); err == nil {
		if err := s.views.Set(ctx, view, version, encoded); err != nil {
			s.logger.Warn().Err(err).Str("view", view).Msg("view cache write failed")
		}
	}
	return slots, nil
}

func reject(outcome ports.Outcome, msg string) ports.SubmissionResult {
	return ports.SubmissionResult{Message: msg, Error: true, Outcome: outcome}
}
