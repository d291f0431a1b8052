package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stianfs/fitness-app/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CreateUserInput struct {
	Email        string
	PasswordHash string
	DisplayName  *string
}

type UpdateUserInput struct {
	DisplayName *string
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the credentialed identity together with its membership
// profile as a single row. Membership starts as basic with a 30 day expiry.
func (r *UserRepository) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, display_name, membership_type, membership_expiry)
		VALUES ($1, $2, $3, $4, 'basic', NOW() + INTERVAL '30 days')
		RETURNING id, email, password_hash, display_name, membership_type, membership_expiry, created_at, updated_at
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, uuid.New().String(), input.Email, input.PasswordHash, input.DisplayName).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.MembershipType,
		&user.MembershipExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, membership_type, membership_expiry, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.MembershipType,
		&user.MembershipExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, membership_type, membership_expiry, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.MembershipType,
		&user.MembershipExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePartial(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET display_name = COALESCE($2, display_name),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, password_hash, display_name, membership_type, membership_expiry, created_at, updated_at
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id, input.DisplayName).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.MembershipType,
		&user.MembershipExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMembership switches the membership tier and extends the expiry by 30
// days from now.
func (r *UserRepository) UpdateMembership(ctx context.Context, id string, membershipType string) (*models.User, error) {
	query := `
		UPDATE users
		SET membership_type = $2,
			membership_expiry = NOW() + INTERVAL '30 days',
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, password_hash, display_name, membership_type, membership_expiry, created_at, updated_at
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id, membershipType).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.MembershipType,
		&user.MembershipExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
