package ports

import (
	"context"

	"github.com/medconnect/appointments/internal/core/domain"
)

// PrincipalResolver returns the principal authenticated for the current request.
type PrincipalResolver interface {
	CurrentPrincipal(ctx context.Context) (domain.Principal, bool)
}
