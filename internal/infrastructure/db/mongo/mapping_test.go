package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medconnect/appointments/internal/core/domain"
)

func TestMongoUser_ToDomain(t *testing.T) {
	id := primitive.NewObjectID()
	u := mongoUser{
		ID:           id,
		Email:        "doc@example.com",
		PasswordHash: "hash",
		Role:         "doctor",
		CreatedAt:    1717232400,
	}

	got := u.toDomain()
	if got.ID != id.Hex() || got.Role != domain.RoleDoctor {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.Equal(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
	if !got.UpdatedAt.IsZero() {
		t.Fatalf("zero unix timestamp must map to zero time")
	}
}

func TestMongoSlot_ToDomainIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	s := mongoSlot{
		ID:        primitive.NewObjectID(),
		DoctorID:  "doc-1",
		StartTime: time.Date(2024, 6, 1, 11, 0, 0, 0, loc),
		EndTime:   time.Date(2024, 6, 1, 12, 0, 0, 0, loc),
	}

	got := s.toDomain()
	if got.StartTime.Location() != time.UTC || got.StartTime.Hour() != 9 {
		t.Fatalf("expected UTC start, got %v", got.StartTime)
	}
	if got.IsBooked {
		t.Fatalf("unexpected booked flag")
	}
}
