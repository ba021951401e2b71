package ports

import (
	"context"

	"github.com/medconnect/appointments/internal/core/domain"
)

// AuthRepository defines the interface for account credential persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create stores the user together with its profile. Returns
	// domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ProfileRepository resolves the role of an authenticated principal.
type ProfileRepository interface {
	// FindProfile returns domain.ErrProfileNotFound when id has no profile.
	FindProfile(ctx context.Context, id string) (*domain.Profile, error)
}
