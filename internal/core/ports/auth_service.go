package ports

import (
	"context"

	"github.com/medconnect/appointments/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role // empty defaults to patient
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
