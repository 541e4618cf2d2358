package dto

import (
	"time"

	"github.com/trungle/unidocs/internal/app/models"
)

// RateDocumentRequest carries a score and optional comment for a document
type RateDocumentRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}

// RatingResponse represents a single rating in API responses
type RatingResponse struct {
	ID            int64      `json:"id"`
	DocumentID    int64      `json:"documentId"`
	DocumentTitle string     `json:"documentTitle,omitempty"`
	UserID        int64      `json:"userId"`
	RaterName     string     `json:"raterName,omitempty"`
	Score         int        `json:"score"`
	Comment       string     `json:"comment,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// RatingListResponse represents a paginated list of ratings
type RatingListResponse struct {
	Ratings    []RatingResponse `json:"ratings"`
	Pagination PaginationInfo   `json:"pagination"`
}

// RatingSummaryResponse carries the aggregate state of a document after a
// rating operation so clients can refresh without a second request.
type RatingSummaryResponse struct {
	DocumentID    int64   `json:"documentId"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	UserRating    *RatingResponse `json:"userRating,omitempty"`
}

// FromRating converts a models.Rating to a RatingResponse
func FromRating(rating *models.Rating) RatingResponse {
	if rating == nil {
		return RatingResponse{}
	}
	return RatingResponse{
		ID:            rating.ID,
		DocumentID:    rating.DocumentID,
		DocumentTitle: rating.DocumentTitle,
		UserID:        rating.UserID,
		RaterName:     rating.RaterName,
		Score:         rating.Score,
		Comment:       rating.Comment,
		CreatedAt:     rating.CreatedAt,
		UpdatedAt:     rating.UpdatedAt,
	}
}

// FromRatings converts a slice of ratings to responses
func FromRatings(ratings []models.Rating) []RatingResponse {
	responses := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, FromRating(&ratings[i]))
	}
	return responses
}
