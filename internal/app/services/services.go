package services

import (
	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/repositories"
	"github.com/trungle/unidocs/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	DocumentService   DocumentService
	RatingService     RatingService
	BookmarkService   BookmarkService
	DashboardService  DashboardService
	UniversityService UniversityService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, storage filestorage.FileStorage) *Services {
	policy := auth.NewPolicyService()

	return &Services{
		DocumentService: NewDocumentService(
			repos.DocumentRepository,
			repos.UniversityRepository,
			repos.SubjectRepository,
			storage,
			policy,
		),
		RatingService: NewRatingService(
			repos.RatingRepository,
			repos.DocumentRepository,
			policy,
		),
		BookmarkService: NewBookmarkService(
			repos.BookmarkRepository,
			repos.DocumentRepository,
		),
		DashboardService: NewDashboardService(
			repos.DocumentRepository,
			repos.RatingRepository,
			repos.BookmarkRepository,
		),
		UniversityService: NewUniversityService(
			repos.UniversityRepository,
			repos.SubjectRepository,
			policy,
		),
	}
}
