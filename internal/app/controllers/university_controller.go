package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/services"
	"github.com/trungle/unidocs/internal/middleware"
)

// UniversityController handles the reference catalog endpoints
type UniversityController struct {
	universityService services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService services.UniversityService) *UniversityController {
	return &UniversityController{universityService: universityService}
}

// GetUniversities godoc
// @Summary List all universities
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.UniversityResponse}
// @Router /universities [get]
func (c *UniversityController) GetUniversities(ctx *gin.Context) {
	universities, err := c.universityService.GetUniversities(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(universities))
}

// GetUniversity godoc
// @Summary Get a university by ID
// @Tags catalog
// @Produce json
// @Param id path int true "University ID"
// @Success 200 {object} dto.APIResponse{data=dto.UniversityResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /universities/{id} [get]
func (c *UniversityController) GetUniversity(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		invalidRequest(ctx, "Invalid university ID")
		return
	}

	university, err := c.universityService.GetUniversity(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(university))
}

// CreateUniversity godoc
// @Summary Add a university
// @Description Admin only
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateUniversityRequest true "University fields"
// @Success 201 {object} dto.APIResponse{data=dto.UniversityResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /universities [post]
func (c *UniversityController) CreateUniversity(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	var req dto.CreateUniversityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid university fields")
		return
	}

	university, err := c.universityService.CreateUniversity(ctx, actor, req.Name, req.Code, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(university))
}

// GetSubjects godoc
// @Summary List subjects
// @Tags catalog
// @Produce json
// @Param universityId query int false "Filter by university ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse}
// @Router /subjects [get]
func (c *UniversityController) GetSubjects(ctx *gin.Context) {
	universityID := parseOptionalInt64Query(ctx, "universityId")

	subjects, err := c.universityService.GetSubjects(ctx, universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects))
}

// CreateSubject godoc
// @Summary Add a subject to a university
// @Description Admin only
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateSubjectRequest true "Subject fields"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /subjects [post]
func (c *UniversityController) CreateSubject(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid subject fields")
		return
	}

	subject, err := c.universityService.CreateSubject(ctx, actor, req.Name, req.Code, req.UniversityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subject))
}
