package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/db"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
	"github.com/trungle/unidocs/internal/pkg/helpers"
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// recomputeAggregatesSQL refreshes the denormalized aggregates on a document
// from the live rating rows. AVG is rounded to 1 decimal; both columns fall
// back to 0 when the document has no ratings left.
const recomputeAggregatesSQL = `
UPDATE documents d
SET average_rating = COALESCE(sub.avg_score, 0),
    rating_count   = COALESCE(sub.cnt, 0)
FROM (
    SELECT ROUND(AVG(score)::numeric, 1) AS avg_score, COUNT(*) AS cnt
    FROM ratings
    WHERE document_id = $1
) sub
WHERE d.id = $1`

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	DB *pgxpool.Pool
}

// NewRatingRepository creates a new instance of RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) selectRatingQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.document_id", "r.user_id", "r.score", "COALESCE(r.comment, '') AS comment",
		"r.created_at", "r.updated_at",
		"u.first_name || ' ' || u.last_name AS rater_name",
		"d.title AS document_title",
	).From("ratings r").
		Join("users u ON r.user_id = u.id").
		Join("documents d ON r.document_id = d.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRating(row pgx.Row) (*models.Rating, error) {
	var rating models.Rating
	err := row.Scan(
		&rating.ID, &rating.DocumentID, &rating.UserID, &rating.Score,
		&rating.Comment, &rating.CreatedAt, &rating.UpdatedAt,
		&rating.RaterName, &rating.DocumentTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRatingNotFound
		}
		logger.Error().Err(err).Msg("Error scanning rating row")
		return nil, err
	}
	return &rating, nil
}

// UpsertRating inserts a new rating or updates the existing one for the
// (document, user) pair, then recomputes the document's average_rating and
// rating_count. All three statements run in a single transaction so readers
// never observe a rating without the matching aggregates. An overwrite resets
// created_at as well, so the rating re-sorts to the top of newest-first lists.
func (r *RatingRepository) UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, bool, error) {
	var created bool
	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		var existingID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM ratings WHERE document_id = $1 AND user_id = $2 FOR UPDATE`,
			rating.DocumentID, rating.UserID,
		).Scan(&existingID)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			created = true
			err = tx.QueryRow(ctx,
				`INSERT INTO ratings (document_id, user_id, score, comment, created_at)
				 VALUES ($1, $2, $3, $4, $5)
				 RETURNING id, created_at`,
				rating.DocumentID, rating.UserID, rating.Score,
				helpers.GetContentNullString(rating.Comment), time.Now(),
			).Scan(&rating.ID, &rating.CreatedAt)
			if err != nil {
				logger.Error().Err(err).Int64("documentId", rating.DocumentID).Msg("Error inserting rating")
				return err
			}
		case err != nil:
			logger.Error().Err(err).Msg("Error looking up existing rating")
			return err
		default:
			now := time.Now()
			_, err = tx.Exec(ctx,
				`UPDATE ratings SET score = $1, comment = $2, created_at = $3, updated_at = $3 WHERE id = $4`,
				rating.Score, helpers.GetContentNullString(rating.Comment), now, existingID,
			)
			if err != nil {
				logger.Error().Err(err).Int64("ratingId", existingID).Msg("Error updating rating")
				return err
			}
			rating.ID = existingID
			rating.CreatedAt = now
			rating.UpdatedAt = &now
		}

		if _, err = tx.Exec(ctx, recomputeAggregatesSQL, rating.DocumentID); err != nil {
			logger.Error().Err(err).Int64("documentId", rating.DocumentID).Msg("Error recomputing rating aggregates")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rating, created, nil
}

// DeleteRating removes a rating and recomputes the owning document's
// aggregates in the same transaction. Returns the document ID the rating
// belonged to.
func (r *RatingRepository) DeleteRating(ctx context.Context, ratingID int64) (int64, error) {
	var documentID int64
	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`DELETE FROM ratings WHERE id = $1 RETURNING document_id`, ratingID,
		).Scan(&documentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrRatingNotFound
			}
			logger.Error().Err(err).Int64("ratingId", ratingID).Msg("Error deleting rating")
			return err
		}

		if _, err = tx.Exec(ctx, recomputeAggregatesSQL, documentID); err != nil {
			logger.Error().Err(err).Int64("documentId", documentID).Msg("Error recomputing rating aggregates after delete")
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return documentID, nil
}

// GetRatingByID retrieves a single rating with rater and document details
func (r *RatingRepository) GetRatingByID(ctx context.Context, id int64) (*models.Rating, error) {
	sqlStr, args, err := r.selectRatingQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get rating by ID SQL")
		return nil, err
	}
	return scanRating(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetRatingByDocumentAndUser retrieves the rating a user gave a document, if any
func (r *RatingRepository) GetRatingByDocumentAndUser(ctx context.Context, documentID, userID int64) (*models.Rating, error) {
	sqlStr, args, err := r.selectRatingQuery().
		Where(squirrel.Eq{"r.document_id": documentID, "r.user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get rating by document and user SQL")
		return nil, err
	}
	return scanRating(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetRatingsByDocumentID retrieves a paginated list of ratings for a document,
// newest first
func (r *RatingRepository) GetRatingsByDocumentID(ctx context.Context, documentID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error) {
	countSQL, countArgs, err := squirrel.Select("count(*)").From("ratings").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count ratings SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err = r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count ratings query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []models.Rating{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectRatingQuery().
		Where(squirrel.Eq{"r.document_id": documentID}).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list ratings SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list ratings query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		ratings = append(ratings, *rating)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating rating rows")
		return nil, dto.PaginationInfo{}, err
	}

	return ratings, pagination, nil
}

// GetRatingsByUserID retrieves a paginated list of ratings given by a user,
// newest first
func (r *RatingRepository) GetRatingsByUserID(ctx context.Context, userID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error) {
	countSQL, countArgs, err := squirrel.Select("count(*)").From("ratings").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count user ratings SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err = r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count user ratings query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []models.Rating{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectRatingQuery().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list user ratings SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list user ratings query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		ratings = append(ratings, *rating)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating user rating rows")
		return nil, dto.PaginationInfo{}, err
	}

	return ratings, pagination, nil
}

// CountRatingsByUserID returns how many ratings a user has given
func (r *RatingRepository) CountRatingsByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM ratings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error counting ratings by user")
		return 0, err
	}
	return count, nil
}

// GetAverageScoreGivenByUser returns the mean score across a user's ratings,
// rounded to 1 decimal, or 0 when the user has rated nothing.
func (r *RatingRepository) GetAverageScoreGivenByUser(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(score)::numeric, 1), 0) FROM ratings WHERE user_id = $1`,
		userID,
	).Scan(&avg)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error computing average score given by user")
		return 0, err
	}
	return avg, nil
}
