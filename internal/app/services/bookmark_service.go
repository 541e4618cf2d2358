package services

import (
	"context"
	"fmt"

	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
)

// bookmarkRepository is the persistence surface the bookmark service needs
type bookmarkRepository interface {
	Toggle(ctx context.Context, userID, documentID int64) (bool, error)
	Exists(ctx context.Context, userID, documentID int64) (bool, error)
	GetBookmarksByUserID(ctx context.Context, userID int64, page, size int) ([]models.Bookmark, []models.Document, dto.PaginationInfo, error)
	CountBookmarksByUserID(ctx context.Context, userID int64) (int64, error)
}

// BookmarkService defines the interface for bookmark operations
type BookmarkService interface {
	ToggleBookmark(ctx context.Context, userID, documentID int64) (*dto.ToggleBookmarkResponse, error)
	IsBookmarked(ctx context.Context, userID, documentID int64) (bool, error)
	GetUserBookmarks(ctx context.Context, userID int64, page, size int) (*dto.BookmarkListResponse, error)
	CountBookmarks(ctx context.Context, userID int64) (int64, error)
}

// bookmarkServiceImpl implements BookmarkService
type bookmarkServiceImpl struct {
	bookmarkRepo bookmarkRepository
	documentRepo documentFinder
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(bookmarkRepo bookmarkRepository, documentRepo documentFinder) BookmarkService {
	return &bookmarkServiceImpl{
		bookmarkRepo: bookmarkRepo,
		documentRepo: documentRepo,
	}
}

// ToggleBookmark flips the bookmark state for the user and document and
// reports the resulting state. Toggling twice returns to the starting state.
func (s *bookmarkServiceImpl) ToggleBookmark(ctx context.Context, userID, documentID int64) (*dto.ToggleBookmarkResponse, error) {
	if _, err := s.documentRepo.GetDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}

	bookmarked, err := s.bookmarkRepo.Toggle(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("error toggling bookmark: %w", err)
	}

	return &dto.ToggleBookmarkResponse{
		DocumentID: documentID,
		Bookmarked: bookmarked,
	}, nil
}

// IsBookmarked reports whether the user has bookmarked the document
func (s *bookmarkServiceImpl) IsBookmarked(ctx context.Context, userID, documentID int64) (bool, error) {
	return s.bookmarkRepo.Exists(ctx, userID, documentID)
}

// CountBookmarks reports how many documents the user has bookmarked
func (s *bookmarkServiceImpl) CountBookmarks(ctx context.Context, userID int64) (int64, error) {
	return s.bookmarkRepo.CountBookmarksByUserID(ctx, userID)
}

// GetUserBookmarks retrieves a paginated list of the user's bookmarks with
// the bookmarked documents
func (s *bookmarkServiceImpl) GetUserBookmarks(ctx context.Context, userID int64, page, size int) (*dto.BookmarkListResponse, error) {
	bookmarks, documents, pagination, err := s.bookmarkRepo.GetBookmarksByUserID(ctx, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting bookmarks: %w", err)
	}

	responses := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for i := range bookmarks {
		var doc *models.Document
		if i < len(documents) {
			doc = &documents[i]
		}
		responses = append(responses, dto.FromBookmark(&bookmarks[i], doc))
	}

	return &dto.BookmarkListResponse{
		Bookmarks:  responses,
		Pagination: pagination,
	}, nil
}
