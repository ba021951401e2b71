package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrSlotConflict      = errors.New("availability slot already exists")
	ErrIncompleteSlot    = errors.New("availability fields missing")
	ErrInvalidSlotFormat = errors.New("invalid date or time format")
	ErrInvalidSlotRange  = errors.New("start time must be before end time")
)

// AvailabilitySlot is one bookable interval published by a doctor.
// StartTime and EndTime are always stored in UTC.
type AvailabilitySlot struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotFormInput is the raw form submission: an ISO calendar date and two
// 24h wall-clock times.
type SlotFormInput struct {
	Date      string
	StartTime string
	EndTime   string
}

// SlotRequest is a validated interval ready to be persisted.
type SlotRequest struct {
	Start time.Time
	End   time.Time
}

var slotLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseSlotRequest validates in and combines the date with both times in loc.
// Checks run in a fixed order and the first failure wins: presence, format,
// then range.
func ParseSlotRequest(in SlotFormInput, loc *time.Location) (SlotRequest, error) {
	if loc == nil {
		loc = time.UTC
	}

	date := strings.TrimSpace(in.Date)
	startClock := strings.TrimSpace(in.StartTime)
	endClock := strings.TrimSpace(in.EndTime)
	if date == "" || startClock == "" || endClock == "" {
		return SlotRequest{}, ErrIncompleteSlot
	}

	start, ok := parseWallClock(date, startClock, loc)
	if !ok {
		return SlotRequest{}, ErrInvalidSlotFormat
	}
	end, ok := parseWallClock(date, endClock, loc)
	if !ok {
		return SlotRequest{}, ErrInvalidSlotFormat
	}

	if !start.Before(end) {
		return SlotRequest{}, ErrInvalidSlotRange
	}
	return SlotRequest{Start: start, End: end}, nil
}

func parseWallClock(date, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, date+"T"+clock, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Slot builds the new, unbooked slot owned by doctorID.
func (r SlotRequest) Slot(doctorID string) *AvailabilitySlot {
	return &AvailabilitySlot{
		DoctorID:  doctorID,
		StartTime: r.Start.UTC(),
		EndTime:   r.End.UTC(),
		IsBooked:  false,
	}
}

// DashboardView names the cached dashboard view listing a doctor's slots.
func DashboardView(doctorID string) string {
	return "doctor/dashboard:" + doctorID
}
