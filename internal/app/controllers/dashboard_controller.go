package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/services"
	"github.com/trungle/unidocs/internal/middleware"
)

// DashboardController handles the personal statistics dashboard
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetPersonalStatistics godoc
// @Summary Get the caller's activity dashboard
// @Description Upload totals, views, downloads, bookmarks, ratings given and
// @Description received, popularity score, uploads per day and top documents.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.PersonalStatisticsResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/dashboard [get]
func (c *DashboardController) GetPersonalStatistics(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	stats, err := c.dashboardService.GetPersonalStatistics(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
