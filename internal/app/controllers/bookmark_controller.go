package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/services"
	"github.com/trungle/unidocs/internal/middleware"
	"github.com/trungle/unidocs/internal/pkg/helpers"
)

// BookmarkController handles bookmark operations
type BookmarkController struct {
	bookmarkService services.BookmarkService
}

// NewBookmarkController creates a new BookmarkController
func NewBookmarkController(bookmarkService services.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService}
}

// ToggleBookmark godoc
// @Summary Toggle a bookmark
// @Description Bookmarks the document if it is not bookmarked, removes the
// @Description bookmark otherwise. Returns the resulting state.
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleBookmarkResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/bookmark [post]
func (c *BookmarkController) ToggleBookmark(ctx *gin.Context) {
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

	result, err := c.bookmarkService.ToggleBookmark(ctx, actor.UserID, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetBookmarkState godoc
// @Summary Check whether the caller bookmarked a document
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleBookmarkResponse}
// @Router /documents/{id}/bookmark [get]
func (c *BookmarkController) GetBookmarkState(ctx *gin.Context) {
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

	bookmarked, err := c.bookmarkService.IsBookmarked(ctx, actor.UserID, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToggleBookmarkResponse{
		DocumentID: documentID,
		Bookmarked: bookmarked,
	}))
}

// GetMyBookmarkCount godoc
// @Summary Count the caller's bookmarks
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=map[string]int64}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/bookmarks/count [get]
func (c *BookmarkController) GetMyBookmarkCount(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	count, err := c.bookmarkService.CountBookmarks(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"count": count}))
}

// GetMyBookmarks godoc
// @Summary List the caller's bookmarked documents
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.BookmarkListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/bookmarks [get]
func (c *BookmarkController) GetMyBookmarks(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.bookmarkService.GetUserBookmarks(ctx, actor.UserID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(result.Bookmarks, result.Pagination))
}
