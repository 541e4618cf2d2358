package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
	"github.com/trungle/unidocs/internal/pkg/dberrors"
	"github.com/trungle/unidocs/internal/pkg/helpers"
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// UniversityRepository handles database operations for universities
type UniversityRepository struct {
	DB *pgxpool.Pool
}

// NewUniversityRepository creates a new instance of UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{DB: db}
}

// GetAllUniversities retrieves all universities ordered by name
func (r *UniversityRepository) GetAllUniversities(ctx context.Context) ([]models.University, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "code", "COALESCE(description, '')").
		From("universities").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list universities SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list universities query")
		return nil, err
	}
	defer rows.Close()

	universities := make([]models.University, 0)
	for rows.Next() {
		var u models.University
		if err = rows.Scan(&u.ID, &u.Name, &u.Code, &u.Description); err != nil {
			logger.Error().Err(err).Msg("Error scanning university row")
			return nil, err
		}
		universities = append(universities, u)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating university rows")
		return nil, err
	}
	return universities, nil
}

// GetUniversityByID retrieves a single university
func (r *UniversityRepository) GetUniversityByID(ctx context.Context, id int64) (*models.University, error) {
	var u models.University
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, code, COALESCE(description, '') FROM universities WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Code, &u.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Int64("universityId", id).Msg("Error getting university by ID")
		return nil, err
	}
	return &u, nil
}

// CreateUniversity inserts a new university
func (r *UniversityRepository) CreateUniversity(ctx context.Context, u *models.University) (int64, error) {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO universities (name, code, description) VALUES ($1, $2, $3) RETURNING id`,
		u.Name, u.Code, helpers.GetContentNullString(u.Description),
	).Scan(&u.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "universities_code_key") {
			return 0, apperrors.NewValidationError("A university with this code already exists")
		}
		logger.Error().Err(err).Msg("Error creating university")
		return 0, err
	}
	return u.ID, nil
}
