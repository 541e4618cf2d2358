package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// MockBookmarkRepository mocks the bookmarkRepository interface
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Toggle(ctx context.Context, userID, documentID int64) (bool, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, userID, documentID int64) (bool, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) GetBookmarksByUserID(ctx context.Context, userID int64, page, size int) ([]models.Bookmark, []models.Document, dto.PaginationInfo, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, nil, args.Get(2).(dto.PaginationInfo), args.Error(3)
	}
	return args.Get(0).([]models.Bookmark), args.Get(1).([]models.Document), args.Get(2).(dto.PaginationInfo), args.Error(3)
}

func (m *MockBookmarkRepository) CountBookmarksByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestToggleBookmark_TogglePairReturnsToStart(t *testing.T) {
	mockBookmarkRepo := new(MockBookmarkRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewBookmarkService(mockBookmarkRepo, mockDocFinder)

	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1}, nil)
	mockBookmarkRepo.On("Toggle", mock.Anything, int64(7), int64(1)).Return(true, nil).Once()
	mockBookmarkRepo.On("Toggle", mock.Anything, int64(7), int64(1)).Return(false, nil).Once()

	first, err := service.ToggleBookmark(context.Background(), 7, 1)
	assert.NoError(t, err)
	assert.True(t, first.Bookmarked)

	second, err := service.ToggleBookmark(context.Background(), 7, 1)
	assert.NoError(t, err)
	assert.False(t, second.Bookmarked)

	mockBookmarkRepo.AssertExpectations(t)
}

func TestToggleBookmark_UnknownDocument(t *testing.T) {
	mockBookmarkRepo := new(MockBookmarkRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewBookmarkService(mockBookmarkRepo, mockDocFinder)

	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(99)).
		Return(nil, apperrors.ErrDocumentNotFound)

	_, err := service.ToggleBookmark(context.Background(), 7, 99)

	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	mockBookmarkRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleBookmark_ConcurrentInsertStillBookmarked(t *testing.T) {
	mockBookmarkRepo := new(MockBookmarkRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewBookmarkService(mockBookmarkRepo, mockDocFinder)

	// When two toggles race on a missing bookmark, the repository reports
	// bookmarked for both rather than failing one of them.
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1}, nil)
	mockBookmarkRepo.On("Toggle", mock.Anything, int64(7), int64(1)).Return(true, nil)

	result, err := service.ToggleBookmark(context.Background(), 7, 1)

	assert.NoError(t, err)
	assert.True(t, result.Bookmarked)
}

func TestGetUserBookmarks(t *testing.T) {
	mockBookmarkRepo := new(MockBookmarkRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewBookmarkService(mockBookmarkRepo, mockDocFinder)

	bookmarks := []models.Bookmark{
		{ID: 1, UserID: 7, DocumentID: 11},
		{ID: 2, UserID: 7, DocumentID: 12},
	}
	documents := []models.Document{
		{ID: 11, Title: "Calculus Notes"},
		{ID: 12, Title: "Linear Algebra Summary"},
	}
	pagination := dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 20, TotalItems: 2}

	mockBookmarkRepo.On("GetBookmarksByUserID", mock.Anything, int64(7), 1, 20).
		Return(bookmarks, documents, pagination, nil)

	result, err := service.GetUserBookmarks(context.Background(), 7, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result.Bookmarks, 2)
	assert.Equal(t, "Calculus Notes", result.Bookmarks[0].Document.Title)
	assert.Equal(t, int64(2), result.Pagination.TotalItems)
}
