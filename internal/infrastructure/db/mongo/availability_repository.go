package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medconnect/appointments/internal/core/domain"
)

type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepository {
	return &AvailabilityRepository{col: db.Collection(collectionAvailability)}
}

type mongoSlot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	DoctorID  string             `bson:"doctor_id"`
	StartTime time.Time          `bson:"start_time"`
	EndTime   time.Time          `bson:"end_time"`
	IsBooked  bool               `bson:"is_booked"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (s mongoSlot) toDomain() *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        s.ID.Hex(),
		DoctorID:  s.DoctorID,
		StartTime: s.StartTime.UTC(),
		EndTime:   s.EndTime.UTC(),
		IsBooked:  s.IsBooked,
		CreatedAt: s.CreatedAt.UTC(),
	}
}

// Insert stores a new slot. The uniq_doctor_slot index turns a repeated
// (doctor_id, start_time, end_time) into domain.ErrSlotConflict.
func (r *AvailabilityRepository) Insert(ctx context.Context, slot *domain.AvailabilitySlot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSlot{
		ID:        primitive.NewObjectID(),
		DoctorID:  slot.DoctorID,
		StartTime: slot.StartTime.UTC(),
		EndTime:   slot.EndTime.UTC(),
		IsBooked:  slot.IsBooked,
		CreatedAt: slot.CreatedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return insertErr(err, domain.ErrSlotConflict, "availability")
	}
	slot.ID = doc.ID.Hex()
	return nil
}

// ListByDoctor returns the doctor's slots ordered by start_time ascending.
func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"doctor_id": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoSlot
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}

	slots := make([]*domain.AvailabilitySlot, 0, len(docs))
	for _, d := range docs {
		slots = append(slots, d.toDomain())
	}
	return slots, nil
}
