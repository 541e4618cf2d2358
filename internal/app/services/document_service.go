package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
	"github.com/trungle/unidocs/internal/pkg/filestorage"
	"github.com/trungle/unidocs/internal/pkg/logger"
	"github.com/trungle/unidocs/internal/pkg/validation"
)

// documentRepository is the persistence surface the document service needs
type documentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) (int64, error)
	GetDocumentByID(ctx context.Context, id int64) (*models.Document, error)
	SearchDocuments(ctx context.Context, params dto.DocumentSearchRequest) ([]models.Document, dto.PaginationInfo, error)
	GetDocumentsByUploaderID(ctx context.Context, userID int64, page, size int) ([]models.Document, dto.PaginationInfo, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	UpdateDocumentStatus(ctx context.Context, id int64, status models.DocumentStatus) error
	DeleteDocument(ctx context.Context, id int64) (string, error)
	IncrementViewCount(ctx context.Context, id int64) error
	IncrementDownloadCount(ctx context.Context, id int64) error
	GetRecentDocuments(ctx context.Context, limit int) ([]models.Document, error)
	GetMostViewedDocuments(ctx context.Context, limit int) ([]models.Document, error)
	GetMostDownloadedDocuments(ctx context.Context, limit int) ([]models.Document, error)
	GetTopRatedDocuments(ctx context.Context, limit, minRatings int) ([]models.Document, error)
}

// universityFinder resolves universities for reference validation
type universityFinder interface {
	GetUniversityByID(ctx context.Context, id int64) (*models.University, error)
}

// subjectFinder resolves subjects for reference validation
type subjectFinder interface {
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
}

// DocumentService defines the interface for document operations
type DocumentService interface {
	CreateDocument(ctx context.Context, actor auth.Actor, req *dto.CreateDocumentRequest, file *multipart.FileHeader) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id int64, recordView bool) (*dto.DocumentResponse, error)
	SearchDocuments(ctx context.Context, params dto.DocumentSearchRequest) (*dto.DocumentListResponse, error)
	GetUserDocuments(ctx context.Context, userID int64, page, size int) (*dto.DocumentListResponse, error)
	UpdateDocument(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateDocumentRequest, file *multipart.FileHeader) (*dto.DocumentResponse, error)
	UpdateDocumentStatus(ctx context.Context, actor auth.Actor, id int64, status string) error
	DeleteDocument(ctx context.Context, actor auth.Actor, id int64) error
	DownloadDocument(ctx context.Context, id int64) (fullPath string, originalName string, err error)
	GetRecent(ctx context.Context, limit int) ([]dto.DocumentResponse, error)
	GetMostViewed(ctx context.Context, limit int) ([]dto.DocumentResponse, error)
	GetMostDownloaded(ctx context.Context, limit int) ([]dto.DocumentResponse, error)
	GetTopRated(ctx context.Context, limit int) ([]dto.DocumentResponse, error)
}

// documentServiceImpl implements DocumentService
type documentServiceImpl struct {
	documentRepo   documentRepository
	universityRepo universityFinder
	subjectRepo    subjectFinder
	storage        filestorage.FileStorage
	policy         *auth.PolicyService
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo documentRepository,
	universityRepo universityFinder,
	subjectRepo subjectFinder,
	storage filestorage.FileStorage,
	policy *auth.PolicyService,
) DocumentService {
	return &documentServiceImpl{
		documentRepo:   documentRepo,
		universityRepo: universityRepo,
		subjectRepo:    subjectRepo,
		storage:        storage,
		policy:         policy,
	}
}

// CreateDocument validates and stores an uploaded document. The file is saved
// first; if the database insert fails the stored file is removed again.
func (s *documentServiceImpl) CreateDocument(ctx context.Context, actor auth.Actor, req *dto.CreateDocumentRequest, file *multipart.FileHeader) (*dto.DocumentResponse, error) {
	if file == nil {
		return nil, apperrors.ErrFileRequired
	}
	if err := validation.ValidateDocumentMeta(req.Title, req.Description); err != nil {
		return nil, err
	}
	if err := validation.ValidateUpload(file.Filename, file.Size); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.UniversityID, req.SubjectID); err != nil {
		return nil, err
	}

	filePath, err := s.storage.SaveFile(file)
	if err != nil {
		logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store uploaded file")
		return nil, apperrors.ErrStorageFailure
	}

	doc := &models.Document{
		Title:            req.Title,
		Description:      req.Description,
		FilePath:         filePath,
		OriginalFileName: file.Filename,
		FileType:         strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), ".")),
		FileSize:         file.Size,
		PageCount:        req.PageCount,
		UserID:           actor.UserID,
		UniversityID:     req.UniversityID,
		SubjectID:        req.SubjectID,
		Status:           models.StatusApproved,
	}

	if _, err := s.documentRepo.CreateDocument(ctx, doc); err != nil {
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to clean up file after insert failure")
		}
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return s.toResponse(ctx, doc.ID)
}

func (s *documentServiceImpl) validateReferences(ctx context.Context, universityID, subjectID *int64) error {
	if universityID != nil {
		if _, err := s.universityRepo.GetUniversityByID(ctx, *universityID); err != nil {
			return err
		}
	}
	if subjectID != nil {
		subject, err := s.subjectRepo.GetSubjectByID(ctx, *subjectID)
		if err != nil {
			return err
		}
		if universityID != nil && subject.UniversityID != *universityID {
			return apperrors.NewValidationError("Subject does not belong to the selected university")
		}
	}
	return nil
}

func (s *documentServiceImpl) toResponse(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromDocument(doc)
	return &resp, nil
}

// GetDocument retrieves a document. When recordView is set the view counter is
// incremented best-effort: a failed increment is logged and the read still
// succeeds.
func (s *documentServiceImpl) GetDocument(ctx context.Context, id int64, recordView bool) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recordView {
		if err := s.documentRepo.IncrementViewCount(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("documentId", id).Msg("Failed to record document view")
		} else {
			doc.ViewCount++
		}
	}

	resp := dto.FromDocument(doc)
	return &resp, nil
}

// SearchDocuments retrieves a filtered, paginated list of documents
func (s *documentServiceImpl) SearchDocuments(ctx context.Context, params dto.DocumentSearchRequest) (*dto.DocumentListResponse, error) {
	docs, pagination, err := s.documentRepo.SearchDocuments(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error searching documents: %w", err)
	}
	return &dto.DocumentListResponse{
		Documents:  dto.FromDocuments(docs),
		Pagination: pagination,
	}, nil
}

// GetUserDocuments retrieves a paginated list of one user's uploads
func (s *documentServiceImpl) GetUserDocuments(ctx context.Context, userID int64, page, size int) (*dto.DocumentListResponse, error) {
	docs, pagination, err := s.documentRepo.GetDocumentsByUploaderID(ctx, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting user documents: %w", err)
	}
	return &dto.DocumentListResponse{
		Documents:  dto.FromDocuments(docs),
		Pagination: pagination,
	}, nil
}

// UpdateDocument edits a document's metadata and optionally replaces the
// stored file. Only the uploader or an admin may edit. When the file is
// replaced the old file is removed after the update commits; a failed removal
// is logged, never surfaced.
func (s *documentServiceImpl) UpdateDocument(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateDocumentRequest, file *multipart.FileHeader) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyDocument(actor, doc); err != nil {
		return nil, err
	}
	if err := validation.ValidateDocumentMeta(req.Title, req.Description); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.UniversityID, req.SubjectID); err != nil {
		return nil, err
	}

	oldFilePath := ""
	if file != nil {
		if err := validation.ValidateUpload(file.Filename, file.Size); err != nil {
			return nil, err
		}
		newPath, err := s.storage.SaveFile(file)
		if err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store replacement file")
			return nil, apperrors.ErrStorageFailure
		}
		oldFilePath = doc.FilePath
		doc.FilePath = newPath
		doc.OriginalFileName = file.Filename
		doc.FileType = strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
		doc.FileSize = file.Size
	}

	doc.Title = req.Title
	doc.Description = req.Description
	doc.UniversityID = req.UniversityID
	doc.SubjectID = req.SubjectID

	if err := s.documentRepo.UpdateDocument(ctx, doc); err != nil {
		if file != nil {
			if delErr := s.storage.DeleteFile(doc.FilePath); delErr != nil {
				logger.Warn().Err(delErr).Str("path", doc.FilePath).Msg("Failed to clean up replacement file after update failure")
			}
		}
		return nil, fmt.Errorf("error updating document: %w", err)
	}

	if oldFilePath != "" {
		if err := s.storage.DeleteFile(oldFilePath); err != nil {
			logger.Warn().Err(err).Str("path", oldFilePath).Int64("documentId", id).Msg("Failed to delete replaced file")
		}
	}

	return s.toResponse(ctx, id)
}

// UpdateDocumentStatus changes the informational review status of a document.
// Restricted to admins.
func (s *documentServiceImpl) UpdateDocumentStatus(ctx context.Context, actor auth.Actor, id int64, status string) error {
	if err := s.policy.CanChangeDocumentStatus(actor); err != nil {
		return err
	}

	docStatus := models.DocumentStatus(status)
	if !models.IsValidDocumentStatus(docStatus) {
		return apperrors.NewValidationError("Invalid document status")
	}

	return s.documentRepo.UpdateDocumentStatus(ctx, id, docStatus)
}

// DeleteDocument removes a document, its ratings and bookmarks, then deletes
// the stored file. A failed file deletion is logged but does not undo the
// database delete.
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, actor auth.Actor, id int64) error {
	doc, err := s.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyDocument(actor, doc); err != nil {
		return err
	}

	filePath, err := s.documentRepo.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}

	if filePath != "" {
		if err := s.storage.DeleteFile(filePath); err != nil {
			logger.Warn().Err(err).Str("path", filePath).Int64("documentId", id).Msg("Failed to delete stored file")
		}
	}

	return nil
}

// DownloadDocument resolves the absolute path of a document's file and records
// the download best-effort.
func (s *documentServiceImpl) DownloadDocument(ctx context.Context, id int64) (string, string, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	if err := s.documentRepo.IncrementDownloadCount(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("documentId", id).Msg("Failed to record document download")
	}

	return s.storage.GetFullPath(doc.FilePath), doc.OriginalFileName, nil
}

// GetRecent returns the catalog's newest uploads
func (s *documentServiceImpl) GetRecent(ctx context.Context, limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	docs, err := s.documentRepo.GetRecentDocuments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting recent documents: %w", err)
	}
	return dto.FromDocuments(docs), nil
}

// GetMostViewed returns the catalog's most viewed documents
func (s *documentServiceImpl) GetMostViewed(ctx context.Context, limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	docs, err := s.documentRepo.GetMostViewedDocuments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting most viewed documents: %w", err)
	}
	return dto.FromDocuments(docs), nil
}

// GetMostDownloaded returns the catalog's most downloaded documents
func (s *documentServiceImpl) GetMostDownloaded(ctx context.Context, limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	docs, err := s.documentRepo.GetMostDownloadedDocuments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting most downloaded documents: %w", err)
	}
	return dto.FromDocuments(docs), nil
}

// GetTopRated returns the highest rated documents with at least 3 ratings
func (s *documentServiceImpl) GetTopRated(ctx context.Context, limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	docs, err := s.documentRepo.GetTopRatedDocuments(ctx, limit, 3)
	if err != nil {
		return nil, fmt.Errorf("error getting top rated documents: %w", err)
	}
	return dto.FromDocuments(docs), nil
}
