package ports

import (
	"context"

	"github.com/medconnect/appointments/internal/core/domain"
)

// AvailabilityRepository persists availability slots.
type AvailabilityRepository interface {
	// Insert stores slot and fills in its ID. A slot with the same doctor,
	// start and end already stored yields domain.ErrSlotConflict.
	Insert(ctx context.Context, slot *domain.AvailabilitySlot) error
	// ListByDoctor returns the doctor's slots ordered by start time ascending.
	ListByDoctor(ctx context.Context, doctorID string) ([]*domain.AvailabilitySlot, error)
}

// ViewCache stores rendered read views so dashboards can skip the store.
// Each view has a version that Invalidate advances. A payload is served only
// for the version it was stored under, so a render that raced an
// invalidation is never read back.
type ViewCache interface {
	// Get returns the view's current version and the payload stored for it.
	// A miss reports found=false and a nil error.
	Get(ctx context.Context, view string) (payload []byte, version int64, found bool, err error)
	// Set stores payload under version, which must come from a Get made
	// before the data was read.
	Set(ctx context.Context, view string, version int64, payload []byte) error
	Invalidate(ctx context.Context, view string) error
}
