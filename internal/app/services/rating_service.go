package services

import (
	"context"
	"fmt"

	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/validation"
)

// ratingRepository is the persistence surface the rating service needs
type ratingRepository interface {
	UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, bool, error)
	DeleteRating(ctx context.Context, ratingID int64) (int64, error)
	GetRatingByID(ctx context.Context, id int64) (*models.Rating, error)
	GetRatingByDocumentAndUser(ctx context.Context, documentID, userID int64) (*models.Rating, error)
	GetRatingsByDocumentID(ctx context.Context, documentID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error)
	GetRatingsByUserID(ctx context.Context, userID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error)
}

// documentFinder resolves documents for validation and aggregate reads
type documentFinder interface {
	GetDocumentByID(ctx context.Context, id int64) (*models.Document, error)
}

// RatingService defines the interface for rating operations
type RatingService interface {
	RateDocument(ctx context.Context, actor auth.Actor, documentID int64, req *dto.RateDocumentRequest) (*dto.RatingSummaryResponse, error)
	DeleteRating(ctx context.Context, actor auth.Actor, ratingID int64) (*dto.RatingSummaryResponse, error)
	GetDocumentRatings(ctx context.Context, documentID int64, page, size int) (*dto.RatingListResponse, error)
	GetUserRating(ctx context.Context, documentID, userID int64) (*dto.RatingResponse, error)
	GetUserRatings(ctx context.Context, userID int64, page, size int) (*dto.RatingListResponse, error)
}

// ratingServiceImpl implements RatingService
type ratingServiceImpl struct {
	ratingRepo   ratingRepository
	documentRepo documentFinder
	policy       *auth.PolicyService
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo ratingRepository, documentRepo documentFinder, policy *auth.PolicyService) RatingService {
	return &ratingServiceImpl{
		ratingRepo:   ratingRepo,
		documentRepo: documentRepo,
		policy:       policy,
	}
}

// RateDocument creates or replaces the actor's rating for a document. A second
// rating by the same user overwrites the first instead of adding a row. The
// returned summary carries the document's refreshed aggregates.
func (s *ratingServiceImpl) RateDocument(ctx context.Context, actor auth.Actor, documentID int64, req *dto.RateDocumentRequest) (*dto.RatingSummaryResponse, error) {
	if err := validation.ValidateScore(req.Score); err != nil {
		return nil, err
	}
	if err := validation.ValidateComment(req.Comment); err != nil {
		return nil, err
	}

	if _, err := s.documentRepo.GetDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		DocumentID: documentID,
		UserID:     actor.UserID,
		Score:      req.Score,
		Comment:    req.Comment,
	}
	rating, _, err := s.ratingRepo.UpsertRating(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("error saving rating: %w", err)
	}

	return s.buildSummary(ctx, documentID, rating)
}

// DeleteRating removes a rating. Only the rating's author or an admin may
// delete it.
func (s *ratingServiceImpl) DeleteRating(ctx context.Context, actor auth.Actor, ratingID int64) (*dto.RatingSummaryResponse, error) {
	rating, err := s.ratingRepo.GetRatingByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanDeleteRating(actor, rating); err != nil {
		return nil, err
	}

	documentID, err := s.ratingRepo.DeleteRating(ctx, ratingID)
	if err != nil {
		return nil, fmt.Errorf("error deleting rating: %w", err)
	}

	return s.buildSummary(ctx, documentID, nil)
}

func (s *ratingServiceImpl) buildSummary(ctx context.Context, documentID int64, userRating *models.Rating) (*dto.RatingSummaryResponse, error) {
	doc, err := s.documentRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	summary := &dto.RatingSummaryResponse{
		DocumentID:    documentID,
		AverageRating: doc.AverageRating,
		RatingCount:   doc.RatingCount,
	}
	if userRating != nil {
		resp := dto.FromRating(userRating)
		summary.UserRating = &resp
	}
	return summary, nil
}

// GetDocumentRatings retrieves a paginated list of ratings for a document
func (s *ratingServiceImpl) GetDocumentRatings(ctx context.Context, documentID int64, page, size int) (*dto.RatingListResponse, error) {
	if _, err := s.documentRepo.GetDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}

	ratings, pagination, err := s.ratingRepo.GetRatingsByDocumentID(ctx, documentID, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting document ratings: %w", err)
	}

	return &dto.RatingListResponse{
		Ratings:    dto.FromRatings(ratings),
		Pagination: pagination,
	}, nil
}

// GetUserRating retrieves one user's rating for a document. Returns
// ErrRatingNotFound when the user has not rated the document.
func (s *ratingServiceImpl) GetUserRating(ctx context.Context, documentID, userID int64) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.GetRatingByDocumentAndUser(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRating(rating)
	return &resp, nil
}

// GetUserRatings retrieves a paginated list of ratings given by a user
func (s *ratingServiceImpl) GetUserRatings(ctx context.Context, userID int64, page, size int) (*dto.RatingListResponse, error) {
	ratings, pagination, err := s.ratingRepo.GetRatingsByUserID(ctx, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting user ratings: %w", err)
	}

	return &dto.RatingListResponse{
		Ratings:    dto.FromRatings(ratings),
		Pagination: pagination,
	}, nil
}
