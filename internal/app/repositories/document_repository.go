package repositories

import (
	"context"
	"errors"
	"fmt"
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

// UploaderTotals aggregates the catalog footprint of one uploader
type UploaderTotals struct {
	TotalDocuments  int64
	TotalViews      int64
	TotalDownloads  int64
	RatingsReceived int64
	FirstUploadDate *time.Time
}

// DailyUploads is one day's upload count for an uploader
type DailyUploads struct {
	Date  time.Time
	Count int64
}

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	DB *pgxpool.Pool
}

// NewDocumentRepository creates a new instance of DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) selectDocumentQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"d.id", "d.title", "COALESCE(d.description, '') AS description", "d.file_path",
		"d.original_file_name", "d.file_type", "d.file_size", "d.page_count",
		"d.user_id", "d.university_id", "d.subject_id",
		"d.average_rating", "d.rating_count", "d.view_count", "d.download_count",
		"d.status", "d.upload_date", "d.last_updated",
		"u.first_name || ' ' || u.last_name AS uploader_name",
	).From("documents d").
		Join("users u ON d.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Description, &doc.FilePath,
		&doc.OriginalFileName, &doc.FileType, &doc.FileSize, &doc.PageCount,
		&doc.UserID, &doc.UniversityID, &doc.SubjectID,
		&doc.AverageRating, &doc.RatingCount, &doc.ViewCount, &doc.DownloadCount,
		&doc.Status, &doc.UploadDate, &doc.LastUpdated,
		&doc.UploaderName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning document row")
		return nil, err
	}
	return &doc, nil
}

// CreateDocument inserts a new document and returns its ID
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	sqlStr, args, err := squirrel.Insert("documents").
		Columns("title", "description", "file_path", "original_file_name", "file_type",
			"file_size", "page_count", "user_id", "university_id", "subject_id", "status").
		Values(doc.Title, helpers.GetContentNullString(doc.Description), doc.FilePath,
			doc.OriginalFileName, doc.FileType, doc.FileSize, doc.PageCount,
			doc.UserID, doc.UniversityID, doc.SubjectID, doc.Status).
		Suffix("RETURNING id, upload_date").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return 0, err
	}

	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&doc.ID, &doc.UploadDate)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create document query")
		return 0, err
	}

	return doc.ID, nil
}

// GetDocumentByID retrieves a document with uploader, university and subject details
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get document by ID SQL")
		return nil, err
	}

	doc, err := scanDocument(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachRelations(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// attachRelations loads the university and subject rows referenced by a document
func (r *DocumentRepository) attachRelations(ctx context.Context, doc *models.Document) error {
	if doc.UniversityID != nil {
		var u models.University
		err := r.DB.QueryRow(ctx,
			`SELECT id, name, code, COALESCE(description, '') FROM universities WHERE id = $1`,
			*doc.UniversityID,
		).Scan(&u.ID, &u.Name, &u.Code, &u.Description)
		if err == nil {
			doc.University = &u
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Int64("universityId", *doc.UniversityID).Msg("Error loading document university")
			return err
		}
	}
	if doc.SubjectID != nil {
		var s models.Subject
		err := r.DB.QueryRow(ctx,
			`SELECT id, name, code, university_id FROM subjects WHERE id = $1`,
			*doc.SubjectID,
		).Scan(&s.ID, &s.Name, &s.Code, &s.UniversityID)
		if err == nil {
			doc.Subject = &s
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Int64("subjectId", *doc.SubjectID).Msg("Error loading document subject")
			return err
		}
	}
	return nil
}

// SearchDocuments retrieves a filtered, paginated list of documents.
// Keyword matches title and description case-insensitively.
func (r *DocumentRepository) SearchDocuments(ctx context.Context, params dto.DocumentSearchRequest) ([]models.Document, dto.PaginationInfo, error) {
	sqlBuilder := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.status": models.StatusApproved})
	countBuilder := squirrel.Select("count(*)").From("documents d").
		Where(squirrel.Eq{"d.status": models.StatusApproved}).
		PlaceholderFormat(squirrel.Dollar)

	if params.Keyword != "" {
		pattern := "%" + params.Keyword + "%"
		cond := squirrel.Or{
			squirrel.ILike{"d.title": pattern},
			squirrel.ILike{"d.description": pattern},
		}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if params.UniversityID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"d.university_id": *params.UniversityID})
		countBuilder = countBuilder.Where(squirrel.Eq{"d.university_id": *params.UniversityID})
	}
	if params.SubjectID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"d.subject_id": *params.SubjectID})
		countBuilder = countBuilder.Where(squirrel.Eq{"d.subject_id": *params.SubjectID})
	}
	if params.FileType != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"d.file_type": params.FileType})
		countBuilder = countBuilder.Where(squirrel.Eq{"d.file_type": params.FileType})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count documents SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err = r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count documents query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.PageSize)
	if totalItems == 0 {
		return []models.Document{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.PageSize)
	sqlBuilder = sqlBuilder.OrderBy("d.upload_date DESC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search documents SQL")
		return nil, dto.PaginationInfo{}, err
	}

	docs, err := r.queryDocuments(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return docs, pagination, nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, sqlStr string, args ...interface{}) ([]models.Document, error) {
	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing document list query")
		return nil, err
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating document rows")
		return nil, err
	}
	return docs, nil
}

// GetDocumentsByUploaderID retrieves a paginated list of one user's uploads,
// newest first
func (r *DocumentRepository) GetDocumentsByUploaderID(ctx context.Context, userID int64, page, size int) ([]models.Document, dto.PaginationInfo, error) {
	var totalItems int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE user_id = $1`, userID).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting uploader documents")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []models.Document{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.user_id": userID}).
		OrderBy("d.upload_date DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building uploader documents SQL")
		return nil, dto.PaginationInfo{}, err
	}

	docs, err := r.queryDocuments(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return docs, pagination, nil
}

// UpdateDocument updates the editable metadata of a document, including the
// file columns when the caller replaced the stored file.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *models.Document) error {
	sqlStr, args, err := squirrel.Update("documents").
		Set("title", doc.Title).
		Set("description", helpers.GetContentNullString(doc.Description)).
		Set("university_id", doc.UniversityID).
		Set("subject_id", doc.SubjectID).
		Set("file_path", doc.FilePath).
		Set("original_file_name", doc.OriginalFileName).
		Set("file_type", doc.FileType).
		Set("file_size", doc.FileSize).
		Set("last_updated", time.Now()).
		Where(squirrel.Eq{"id": doc.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update document SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", doc.ID).Msg("Error executing update document query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// UpdateDocumentStatus sets the informational review status of a document
func (r *DocumentRepository) UpdateDocumentStatus(ctx context.Context, id int64, status models.DocumentStatus) error {
	cmdTag, err := r.DB.Exec(ctx,
		`UPDATE documents SET status = $1, last_updated = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", id).Msg("Error updating document status")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// DeleteDocument removes a document together with its ratings and bookmarks in
// one transaction, and returns the stored file path so the caller can clean up
// the file after the commit.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id int64) (string, error) {
	var filePath string
	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM ratings WHERE document_id = $1`, id); err != nil {
			logger.Error().Err(err).Int64("documentId", id).Msg("Error deleting document ratings")
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bookmarks WHERE document_id = $1`, id); err != nil {
			logger.Error().Err(err).Int64("documentId", id).Msg("Error deleting document bookmarks")
			return err
		}

		err := tx.QueryRow(ctx, `DELETE FROM documents WHERE id = $1 RETURNING file_path`, id).Scan(&filePath)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrDocumentNotFound
			}
			logger.Error().Err(err).Int64("documentId", id).Msg("Error deleting document")
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return filePath, nil
}

// IncrementViewCount adds one to a document's view counter as a single atomic
// update. No read-modify-write cycle, so concurrent views never lose counts.
func (r *DocumentRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.incrementCounter(ctx, id, "view_count")
}

// IncrementDownloadCount adds one to a document's download counter atomically
func (r *DocumentRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	return r.incrementCounter(ctx, id, "download_count")
}

func (r *DocumentRepository) incrementCounter(ctx context.Context, id int64, column string) error {
	sqlStr := fmt.Sprintf(`UPDATE documents SET %s = %s + 1 WHERE id = $1`, column, column)
	cmdTag, err := r.DB.Exec(ctx, sqlStr, id)
	if err != nil {
		logger.Error().Err(err).Int64("documentId", id).Str("counter", column).Msg("Error incrementing document counter")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// GetUploaderTotals aggregates document counts, views, downloads and ratings
// received across one user's uploads.
func (r *DocumentRepository) GetUploaderTotals(ctx context.Context, userID int64) (*UploaderTotals, error) {
	var totals UploaderTotals
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(view_count), 0),
		        COALESCE(SUM(download_count), 0),
		        COALESCE(SUM(rating_count), 0),
		        MIN(upload_date)
		 FROM documents
		 WHERE user_id = $1`,
		userID,
	).Scan(&totals.TotalDocuments, &totals.TotalViews, &totals.TotalDownloads, &totals.RatingsReceived, &totals.FirstUploadDate)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error aggregating uploader totals")
		return nil, err
	}
	return &totals, nil
}

// GetUploadsPerDay returns one row per calendar day on which the user uploaded
// at least one document within the last `days` days, oldest first.
func (r *DocumentRepository) GetUploadsPerDay(ctx context.Context, userID int64, days int) ([]DailyUploads, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DATE(upload_date) AS day, COUNT(*)
		 FROM documents
		 WHERE user_id = $1 AND upload_date >= NOW() - ($2 || ' days')::interval
		 GROUP BY day
		 ORDER BY day ASC`,
		userID, days,
	)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error querying uploads per day")
		return nil, err
	}
	defer rows.Close()

	buckets := make([]DailyUploads, 0)
	for rows.Next() {
		var b DailyUploads
		if err = rows.Scan(&b.Date, &b.Count); err != nil {
			logger.Error().Err(err).Msg("Error scanning uploads per day row")
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating uploads per day rows")
		return nil, err
	}
	return buckets, nil
}

// GetTopDocumentsByUploader returns the user's most viewed documents, limited
// to at most limit rows.
func (r *DocumentRepository) GetTopDocumentsByUploader(ctx context.Context, userID int64, limit int) ([]models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.user_id": userID}).
		OrderBy("d.view_count DESC", "d.download_count DESC", "d.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building top documents SQL")
		return nil, err
	}
	return r.queryDocuments(ctx, sqlStr, args...)
}

// GetRecentDocuments returns the newest approved uploads across the catalog
func (r *DocumentRepository) GetRecentDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.status": models.StatusApproved}).
		OrderBy("d.upload_date DESC", "d.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building recent documents SQL")
		return nil, err
	}
	return r.queryDocuments(ctx, sqlStr, args...)
}

// GetMostViewedDocuments returns the catalog's most viewed approved documents
func (r *DocumentRepository) GetMostViewedDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.status": models.StatusApproved}).
		OrderBy("d.view_count DESC", "d.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building most viewed documents SQL")
		return nil, err
	}
	return r.queryDocuments(ctx, sqlStr, args...)
}

// GetMostDownloadedDocuments returns the catalog's most downloaded approved
// documents
func (r *DocumentRepository) GetMostDownloadedDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.status": models.StatusApproved}).
		OrderBy("d.download_count DESC", "d.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building most downloaded documents SQL")
		return nil, err
	}
	return r.queryDocuments(ctx, sqlStr, args...)
}

// GetTopRatedDocuments returns the highest rated approved documents that have
// at least minRatings ratings.
func (r *DocumentRepository) GetTopRatedDocuments(ctx context.Context, limit, minRatings int) ([]models.Document, error) {
	sqlStr, args, err := r.selectDocumentQuery().
		Where(squirrel.Eq{"d.status": models.StatusApproved}).
		Where(squirrel.GtOrEq{"d.rating_count": minRatings}).
		OrderBy("d.average_rating DESC", "d.rating_count DESC", "d.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building top rated documents SQL")
		return nil, err
	}
	return r.queryDocuments(ctx, sqlStr, args...)
}
