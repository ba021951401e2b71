package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medconnect/appointments/internal/core/domain"
)

// UserRepository implements ports.AuthRepository and ports.ProfileRepository
// over the users and profiles tables.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	created.ID = uuid.New().String()

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			created.ID, created.Email, created.PasswordHash, created.CreatedAt, created.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO profiles (id, role, full_name) VALUES ($1, $2, $3)`,
			created.ID, string(created.Role), created.FullName)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		u    domain.User
		id   uuid.UUID
		role string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, p.role, p.full_name, u.created_at, u.updated_at
		FROM users u JOIN profiles p ON p.id = u.id
		WHERE u.email = $1`, email).
		Scan(&id, &u.Email, &u.PasswordHash, &role, &u.FullName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.ID = id.String()
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) FindProfile(ctx context.Context, id string) (*domain.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var role, fullName string
	err = r.pool.QueryRow(ctx, `SELECT role, full_name FROM profiles WHERE id = $1`, uid).Scan(&role, &fullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &domain.Profile{ID: id, Role: domain.Role(role), FullName: fullName}, nil
}
