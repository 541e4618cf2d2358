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
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	DB *pgxpool.Pool
}

// NewSubjectRepository creates a new instance of SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// GetSubjects retrieves subjects, optionally filtered by university
func (r *SubjectRepository) GetSubjects(ctx context.Context, universityID *int64) ([]models.Subject, error) {
	builder := squirrel.Select("id", "name", "code", "university_id").
		From("subjects").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)
	if universityID != nil {
		builder = builder.Where(squirrel.Eq{"university_id": *universityID})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list subjects SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, err
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		var s models.Subject
		if err = rows.Scan(&s.ID, &s.Name, &s.Code, &s.UniversityID); err != nil {
			logger.Error().Err(err).Msg("Error scanning subject row")
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating subject rows")
		return nil, err
	}
	return subjects, nil
}

// GetSubjectByID retrieves a single subject
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	var s models.Subject
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, code, university_id FROM subjects WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Code, &s.UniversityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectId", id).Msg("Error getting subject by ID")
		return nil, err
	}
	return &s, nil
}

// CreateSubject inserts a new subject
func (r *SubjectRepository) CreateSubject(ctx context.Context, s *models.Subject) (int64, error) {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO subjects (name, code, university_id) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.Code, s.UniversityID,
	).Scan(&s.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_university_id_code_key") {
			return 0, apperrors.NewValidationError("A subject with this code already exists at this university")
		}
		logger.Error().Err(err).Msg("Error creating subject")
		return 0, err
	}
	return s.ID, nil
}
