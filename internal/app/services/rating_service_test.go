package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// MockRatingRepository mocks the ratingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, bool, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Rating), args.Bool(1), args.Error(2)
}

func (m *MockRatingRepository) DeleteRating(ctx context.Context, ratingID int64) (int64, error) {
	args := m.Called(ctx, ratingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) GetRatingByID(ctx context.Context, id int64) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetRatingByDocumentAndUser(ctx context.Context, documentID, userID int64) (*models.Rating, error) {
	args := m.Called(ctx, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetRatingsByDocumentID(ctx context.Context, documentID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error) {
	args := m.Called(ctx, documentID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(dto.PaginationInfo), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *MockRatingRepository) GetRatingsByUserID(ctx context.Context, userID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(dto.PaginationInfo), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

// MockDocumentFinder mocks the documentFinder interface
type MockDocumentFinder struct {
	mock.Mock
}

func (m *MockDocumentFinder) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func TestRateDocument_FirstRating(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 0, RatingCount: 0}, nil).Once()
	mockRatingRepo.On("UpsertRating", mock.Anything, mock.AnythingOfType("*models.Rating")).
		Return(&models.Rating{ID: 10, DocumentID: 1, UserID: 7, Score: 5}, true, nil)
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 5.0, RatingCount: 1}, nil).Once()

	summary, err := service.RateDocument(context.Background(), actor, 1, &dto.RateDocumentRequest{Score: 5})

	assert.NoError(t, err)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, 1, summary.RatingCount)
	assert.NotNil(t, summary.UserRating)
	assert.Equal(t, 5, summary.UserRating.Score)
	mockRatingRepo.AssertExpectations(t)
	mockDocFinder.AssertExpectations(t)
}

func TestRateDocument_OverwriteKeepsCount(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	// A second rating by the same user replaces the score instead of adding a
	// row: one other user rated 5, ours moves from 5 to 3.
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 5.0, RatingCount: 2}, nil).Once()
	mockRatingRepo.On("UpsertRating", mock.Anything, mock.AnythingOfType("*models.Rating")).
		Return(&models.Rating{ID: 10, DocumentID: 1, UserID: 7, Score: 3}, false, nil)
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 4.0, RatingCount: 2}, nil).Once()

	summary, err := service.RateDocument(context.Background(), actor, 1, &dto.RateDocumentRequest{Score: 3})

	assert.NoError(t, err)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, 2, summary.RatingCount)
	mockRatingRepo.AssertExpectations(t)
}

func TestRateDocument_ScoreOutOfRange(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	for _, score := range []int{0, 6, -1} {
		_, err := service.RateDocument(context.Background(), actor, 1, &dto.RateDocumentRequest{Score: score})
		assert.ErrorIs(t, err, apperrors.ErrScoreOutOfRange)
	}

	// Invalid scores must never reach the repository
	mockRatingRepo.AssertNotCalled(t, "UpsertRating", mock.Anything, mock.Anything)
}

func TestRateDocument_CommentTooLong(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	longComment := make([]byte, 501)
	for i := range longComment {
		longComment[i] = 'a'
	}

	_, err := service.RateDocument(context.Background(), actor, 1, &dto.RateDocumentRequest{
		Score:   4,
		Comment: string(longComment),
	})

	assert.ErrorIs(t, err, apperrors.ErrCommentTooLong)
	mockRatingRepo.AssertNotCalled(t, "UpsertRating", mock.Anything, mock.Anything)
}

func TestRateDocument_DocumentNotFound(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(99)).
		Return(nil, apperrors.ErrDocumentNotFound)

	_, err := service.RateDocument(context.Background(), actor, 99, &dto.RateDocumentRequest{Score: 4})

	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	mockRatingRepo.AssertNotCalled(t, "UpsertRating", mock.Anything, mock.Anything)
}

func TestDeleteRating_LastRatingResetsAggregates(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	mockRatingRepo.On("GetRatingByID", mock.Anything, int64(10)).
		Return(&models.Rating{ID: 10, DocumentID: 1, UserID: 7, Score: 4}, nil)
	mockRatingRepo.On("DeleteRating", mock.Anything, int64(10)).Return(int64(1), nil)
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 0, RatingCount: 0}, nil)

	summary, err := service.DeleteRating(context.Background(), actor, 10)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, 0, summary.RatingCount)
	assert.Nil(t, summary.UserRating)
	mockRatingRepo.AssertExpectations(t)
}

func TestDeleteRating_ForbiddenForOtherUser(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 8, Role: models.RoleStudent}

	mockRatingRepo.On("GetRatingByID", mock.Anything, int64(10)).
		Return(&models.Rating{ID: 10, DocumentID: 1, UserID: 7, Score: 4}, nil)

	_, err := service.DeleteRating(context.Background(), actor, 10)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	mockRatingRepo.AssertNotCalled(t, "DeleteRating", mock.Anything, mock.Anything)
}

func TestDeleteRating_AdminMayDeleteAnyRating(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	actor := auth.Actor{UserID: 99, Role: models.RoleAdmin}

	mockRatingRepo.On("GetRatingByID", mock.Anything, int64(10)).
		Return(&models.Rating{ID: 10, DocumentID: 1, UserID: 7, Score: 4}, nil)
	mockRatingRepo.On("DeleteRating", mock.Anything, int64(10)).Return(int64(1), nil)
	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, AverageRating: 3.5, RatingCount: 2}, nil)

	summary, err := service.DeleteRating(context.Background(), actor, 10)

	assert.NoError(t, err)
	assert.Equal(t, 3.5, summary.AverageRating)
	mockRatingRepo.AssertExpectations(t)
}

func TestGetDocumentRatings_DocumentMustExist(t *testing.T) {
	mockRatingRepo := new(MockRatingRepository)
	mockDocFinder := new(MockDocumentFinder)
	service := NewRatingService(mockRatingRepo, mockDocFinder, auth.NewPolicyService())

	mockDocFinder.On("GetDocumentByID", mock.Anything, int64(99)).
		Return(nil, apperrors.ErrDocumentNotFound)

	_, err := service.GetDocumentRatings(context.Background(), 99, 1, 20)

	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	mockRatingRepo.AssertNotCalled(t, "GetRatingsByDocumentID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
