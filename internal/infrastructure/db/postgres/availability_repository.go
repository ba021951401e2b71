package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medconnect/appointments/internal/core/domain"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

func (r *AvailabilityRepository) conn() queryable { return r.pool }

const slotCols = `id, doctor_id, start_time, end_time, is_booked, created_at`

func scanSlot(row pgx.Row) (*domain.AvailabilitySlot, error) {
	var (
		s            domain.AvailabilitySlot
		id, doctorID uuid.UUID
	)
	if err := row.Scan(&id, &doctorID, &s.StartTime, &s.EndTime, &s.IsBooked, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.ID = id.String()
	s.DoctorID = doctorID.String()
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// Insert stores a new slot. availability_doctor_slot_key rejects a repeated
// (doctor_id, start_time, end_time) with SQLSTATE 23505, reported as
// domain.ErrSlotConflict.
func (r *AvailabilityRepository) Insert(ctx context.Context, slot *domain.AvailabilitySlot) error {
	doctorID, err := uuid.Parse(slot.DoctorID)
	if err != nil {
		return fmt.Errorf("insert availability: doctor id: %w", err)
	}

	id := uuid.New()
	_, err = r.conn().Exec(ctx, `
		INSERT INTO availability (id, doctor_id, start_time, end_time, is_booked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, doctorID, slot.StartTime.UTC(), slot.EndTime.UTC(), slot.IsBooked, slot.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotConflict
		}
		return fmt.Errorf("insert availability: %w", err)
	}
	slot.ID = id.String()
	return nil
}

func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.AvailabilitySlot, error) {
	uid, err := uuid.Parse(doctorID)
	if err != nil {
		return []*domain.AvailabilitySlot{}, nil
	}

	rows, err := r.conn().Query(ctx, `SELECT `+slotCols+` FROM availability WHERE doctor_id = $1 ORDER BY start_time ASC`, uid)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	slots := []*domain.AvailabilitySlot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return slots, nil
}
