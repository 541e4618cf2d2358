package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/services"
	"github.com/trungle/unidocs/internal/middleware"
	"github.com/trungle/unidocs/internal/pkg/helpers"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, err
	}
	return id, nil
}

func parseOptionalInt64Query(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

func invalidRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message),
	})
}

// DocumentController handles document operations
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// CreateDocument godoc
// @Summary Upload a new document
// @Description Upload a document file with its metadata
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Document title"
// @Param description formData string false "Document description"
// @Param universityId formData int false "University ID"
// @Param subjectId formData int false "Subject ID"
// @Param pageCount formData int false "Number of pages"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents [post]
func (c *DocumentController) CreateDocument(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	var req dto.CreateDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		invalidRequest(ctx, "Invalid document fields")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	doc, err := c.documentService.CreateDocument(ctx, actor, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(doc))
}

// GetDocument godoc
// @Summary Get a document by ID
// @Description Get a document's details and record a view
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	doc, err := c.documentService.GetDocument(ctx, id, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.DocumentViews.Inc()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// SearchDocuments godoc
// @Summary Search documents
// @Description Search the catalog by keyword, university, subject and file type
// @Tags documents
// @Produce json
// @Param keyword query string false "Keyword matched against title and description"
// @Param universityId query int false "Filter by university ID"
// @Param subjectId query int false "Filter by subject ID"
// @Param fileType query string false "Filter by file extension"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentListResponse}
// @Router /documents [get]
func (c *DocumentController) SearchDocuments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	params := dto.DocumentSearchRequest{
		Keyword:      ctx.Query("keyword"),
		UniversityID: parseOptionalInt64Query(ctx, "universityId"),
		SubjectID:    parseOptionalInt64Query(ctx, "subjectId"),
		FileType:     ctx.Query("fileType"),
		Page:         page,
		PageSize:     size,
	}

	result, err := c.documentService.SearchDocuments(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(result.Documents, result.Pagination))
}

// GetMyDocuments godoc
// @Summary List the caller's uploads
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/documents [get]
func (c *DocumentController) GetMyDocuments(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.documentService.GetUserDocuments(ctx, actor.UserID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(result.Documents, result.Pagination))
}

// UpdateDocument godoc
// @Summary Update a document's metadata
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Param file formData file false "Replacement document file"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id} [put]
func (c *DocumentController) UpdateDocument(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	var req dto.UpdateDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		invalidRequest(ctx, "Invalid document fields")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	doc, err := c.documentService.UpdateDocument(ctx, actor, id, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// UpdateDocumentStatus godoc
// @Summary Change a document's review status
// @Description Admin only. Sets the informational review status.
// @Tags documents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Param request body dto.UpdateDocumentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/status [patch]
func (c *DocumentController) UpdateDocumentStatus(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	var req dto.UpdateDocumentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid status")
		return
	}

	if err := c.documentService.UpdateDocumentStatus(ctx, actor, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Document status updated"))
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Removes the document, its ratings, bookmarks and stored file
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	if err := c.documentService.DeleteDocument(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Document deleted"))
}

// DownloadDocument godoc
// @Summary Download a document's file
// @Description Streams the stored file and records a download
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /documents/{id}/download [get]
func (c *DocumentController) DownloadDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid document ID")
		return
	}

	fullPath, originalName, err := c.documentService.DownloadDocument(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.DocumentDownloads.Inc()
	ctx.FileAttachment(fullPath, originalName)
}

// GetTopRated godoc
// @Summary List the highest rated documents
// @Tags documents
// @Produce json
// @Param limit query int false "Number of documents (default: 10, max: 50)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /documents/top-rated [get]
func (c *DocumentController) GetTopRated(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	docs, err := c.documentService.GetTopRated(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}

// GetRecent godoc
// @Summary List the newest uploads
// @Tags documents
// @Produce json
// @Param limit query int false "Number of documents (default: 10, max: 50)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /documents/recent [get]
func (c *DocumentController) GetRecent(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	docs, err := c.documentService.GetRecent(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}

// GetMostViewed godoc
// @Summary List the most viewed documents
// @Tags documents
// @Produce json
// @Param limit query int false "Number of documents (default: 10, max: 50)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /documents/most-viewed [get]
func (c *DocumentController) GetMostViewed(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	docs, err := c.documentService.GetMostViewed(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}

// GetMostDownloaded godoc
// @Summary List the most downloaded documents
// @Tags documents
// @Produce json
// @Param limit query int false "Number of documents (default: 10, max: 50)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /documents/most-downloaded [get]
func (c *DocumentController) GetMostDownloaded(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	docs, err := c.documentService.GetMostDownloaded(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}
