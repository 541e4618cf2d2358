package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
	"github.com/trungle/unidocs/internal/pkg/dberrors"
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// UserRepository handles database operations for users
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, first_name, last_name, password_hash, role_type, created_at
		 FROM users WHERE id = $1`, id)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, first_name, last_name, password_hash, role_type, created_at
		 FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getUser(ctx context.Context, sqlStr string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRow(ctx, sqlStr, arg).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.RoleType, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error getting user")
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users (email, first_name, last_name, password_hash, role_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, user.RoleType,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewValidationError("A user with this email already exists")
		}
		logger.Error().Err(err).Msg("Error creating user")
		return 0, err
	}
	return user.ID, nil
}

// UserExistsByEmail reports whether a user with the given email exists
func (r *UserRepository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking user existence by email")
		return false, err
	}
	return exists, nil
}
