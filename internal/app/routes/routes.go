package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/controllers"
	"github.com/trungle/unidocs/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	documentController *controllers.DocumentController,
	ratingController *controllers.RatingController,
	bookmarkController *controllers.BookmarkController,
	dashboardController *controllers.DashboardController,
	universityController *controllers.UniversityController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public catalog routes ---
	universities := v1.Group("/universities")
	{
		universities.GET("", universityController.GetUniversities)
		universities.GET("/:id", universityController.GetUniversity)
	}

	subjects := v1.Group("/subjects")
	{
		subjects.GET("", universityController.GetSubjects)
	}

	// --- Public document routes ---
	documents := v1.Group("/documents")
	{
		documents.GET("", documentController.SearchDocuments)
		documents.GET("/recent", documentController.GetRecent)
		documents.GET("/top-rated", documentController.GetTopRated)
		documents.GET("/most-viewed", documentController.GetMostViewed)
		documents.GET("/most-downloaded", documentController.GetMostDownloaded)
		documents.GET("/:id", documentController.GetDocument)
		documents.GET("/:id/download", documentController.DownloadDocument)
		documents.GET("/:id/ratings", ratingController.GetDocumentRatings)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		documentsProtected := authenticated.Group("/documents")
		{
			documentsProtected.POST("", documentController.CreateDocument)
			documentsProtected.PUT("/:id", documentController.UpdateDocument)
			documentsProtected.DELETE("/:id", documentController.DeleteDocument)
			documentsProtected.POST("/:id/ratings", ratingController.RateDocument)
			documentsProtected.GET("/:id/ratings/me", ratingController.GetMyRatingForDocument)
			documentsProtected.POST("/:id/bookmark", bookmarkController.ToggleBookmark)
			documentsProtected.GET("/:id/bookmark", bookmarkController.GetBookmarkState)

			// Status changes are admin-only; the service checks the policy as
			// well, the middleware just fails fast.
			documentsProtected.PATCH("/:id/status", authMiddleware.AdminRequired(), documentController.UpdateDocumentStatus)
		}

		ratingsProtected := authenticated.Group("/ratings")
		{
			ratingsProtected.DELETE("/:id", ratingController.DeleteRating)
		}

		me := authenticated.Group("/users/me")
		{
			me.GET("/documents", documentController.GetMyDocuments)
			me.GET("/ratings", ratingController.GetMyRatings)
			me.GET("/bookmarks", bookmarkController.GetMyBookmarks)
			me.GET("/bookmarks/count", bookmarkController.GetMyBookmarkCount)
			me.GET("/dashboard", dashboardController.GetPersonalStatistics)
		}

		catalogAdmin := authenticated.Group("")
		catalogAdmin.Use(authMiddleware.AdminRequired())
		{
			catalogAdmin.POST("/universities", universityController.CreateUniversity)
			catalogAdmin.POST("/subjects", universityController.CreateSubject)
		}
	}
}
