package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/helpers"
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// BookmarkRepository handles database operations for bookmarks
type BookmarkRepository struct {
	DB *pgxpool.Pool
}

// NewBookmarkRepository creates a new instance of BookmarkRepository
func NewBookmarkRepository(db *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Toggle flips the bookmark state for a (user, document) pair and returns the
// resulting state: true when the document is now bookmarked.
//
// The delete runs first; one affected row means the bookmark existed and is
// now gone. Otherwise an insert with ON CONFLICT DO NOTHING runs against the
// bookmarks_user_document_key index, so two concurrent toggles on a missing
// bookmark both land on "bookmarked" instead of one of them failing.
func (r *BookmarkRepository) Toggle(ctx context.Context, userID, documentID int64) (bool, error) {
	cmdTag, err := r.DB.Exec(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND document_id = $2`,
		userID, documentID,
	)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", documentID).Msg("Error deleting bookmark during toggle")
		return false, err
	}
	if cmdTag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.DB.Exec(ctx,
		`INSERT INTO bookmarks (user_id, document_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, document_id) DO NOTHING`,
		userID, documentID,
	)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", documentID).Msg("Error inserting bookmark during toggle")
		return false, err
	}

	// Zero affected rows here means a concurrent toggle inserted first; the
	// document is bookmarked either way.
	return true, nil
}

// Exists reports whether the user has bookmarked the document
func (r *BookmarkRepository) Exists(ctx context.Context, userID, documentID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND document_id = $2)`,
		userID, documentID,
	).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", documentID).Msg("Error checking bookmark existence")
		return false, err
	}
	return exists, nil
}

// GetBookmarksByUserID retrieves a paginated list of a user's bookmarks with
// the bookmarked documents, newest bookmark first.
func (r *BookmarkRepository) GetBookmarksByUserID(ctx context.Context, userID int64, page, size int) ([]models.Bookmark, []models.Document, dto.PaginationInfo, error) {
	countSQL, countArgs, err := squirrel.Select("count(*)").From("bookmarks").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count bookmarks SQL")
		return nil, nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err = r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count bookmarks query")
		return nil, nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []models.Bookmark{}, []models.Document{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := squirrel.Select(
		"b.id", "b.user_id", "b.document_id", "b.created_at",
		"d.id", "d.title", "COALESCE(d.description, '')", "d.file_path", "d.original_file_name",
		"d.file_type", "d.file_size", "d.page_count", "d.user_id", "d.university_id",
		"d.subject_id", "d.average_rating", "d.rating_count", "d.view_count",
		"d.download_count", "d.status", "d.upload_date", "d.last_updated",
	).From("bookmarks b").
		Join("documents d ON b.document_id = d.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list bookmarks SQL")
		return nil, nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list bookmarks query")
		return nil, nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	bookmarks := make([]models.Bookmark, 0)
	documents := make([]models.Document, 0)
	for rows.Next() {
		var bookmark models.Bookmark
		var doc models.Document
		err = rows.Scan(
			&bookmark.ID, &bookmark.UserID, &bookmark.DocumentID, &bookmark.CreatedAt,
			&doc.ID, &doc.Title, &doc.Description, &doc.FilePath, &doc.OriginalFileName,
			&doc.FileType, &doc.FileSize, &doc.PageCount, &doc.UserID, &doc.UniversityID,
			&doc.SubjectID, &doc.AverageRating, &doc.RatingCount, &doc.ViewCount,
			&doc.DownloadCount, &doc.Status, &doc.UploadDate, &doc.LastUpdated,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning bookmark row")
			return nil, nil, dto.PaginationInfo{}, err
		}
		bookmarks = append(bookmarks, bookmark)
		documents = append(documents, doc)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating bookmark rows")
		return nil, nil, dto.PaginationInfo{}, err
	}

	return bookmarks, documents, pagination, nil
}

// CountBookmarksByUserID returns how many documents a user has bookmarked
func (r *BookmarkRepository) CountBookmarksByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error counting bookmarks by user")
		return 0, err
	}
	return count, nil
}

// DeleteBookmarksByDocumentID removes all bookmarks pointing at a document.
// Used when a document is deleted.
func (r *BookmarkRepository) DeleteBookmarksByDocumentID(ctx context.Context, documentID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM bookmarks WHERE document_id = $1`, documentID)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", documentID).Msg("Error deleting bookmarks for document")
		return err
	}
	return nil
}
