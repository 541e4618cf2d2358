package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/services"
	"github.com/trungle/unidocs/internal/middleware"
	"github.com/trungle/unidocs/internal/pkg/helpers"
)

// RatingController handles rating operations
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// RateDocument godoc
// @Summary Rate a document
// @Description Create or replace the caller's rating for a document. Rating a
// @Description document twice overwrites the earlier score.
// @Tags ratings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Param request body dto.RateDocumentRequest true "Score and optional comment"
// @Success 200 {object} dto.APIResponse{data=dto.RatingSummaryResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/ratings [post]
func (c *RatingController) RateDocument(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	documentID, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	var req dto.RateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid rating fields")
		return
	}

	summary, err := c.ratingService.RateDocument(ctx, actor, documentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.RatingsSubmitted.Inc()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetDocumentRatings godoc
// @Summary List a document's ratings
// @Tags ratings
// @Produce json
// @Param id path int true "Document ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.RatingListResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/ratings [get]
func (c *RatingController) GetDocumentRatings(ctx *gin.Context) {
	documentID, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.ratingService.GetDocumentRatings(ctx, documentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(result.Ratings, result.Pagination))
}

// GetMyRatingForDocument godoc
// @Summary Get the caller's rating for a document
// @Tags ratings
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/ratings/me [get]
func (c *RatingController) GetMyRatingForDocument(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	documentID, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	rating, err := c.ratingService.GetUserRating(ctx, documentID, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rating))
}

// DeleteRating godoc
// @Summary Delete a rating
// @Description Removes a rating. Only the rating's author or an admin may delete it.
// @Tags ratings
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.APIResponse{data=dto.RatingSummaryResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /ratings/{id} [delete]
func (c *RatingController) DeleteRating(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	ratingID, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid rating ID")
		return
	}

	summary, err := c.ratingService.DeleteRating(ctx, actor, ratingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetMyRatings godoc
// @Summary List the caller's ratings
// @Tags ratings
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.RatingListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/ratings [get]
func (c *RatingController) GetMyRatings(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.ratingService.GetUserRatings(ctx, actor.UserID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(result.Ratings, result.Pagination))
}
