package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/app/repositories"
)

const (
	// DashboardDays is how far back the uploads-per-day series reaches
	DashboardDays = 30
	// DashboardTopDocuments is how many top documents the dashboard shows
	DashboardTopDocuments = 5
	// DashboardRecentItems is how many recent uploads, ratings and bookmarks
	// the dashboard shows per section
	DashboardRecentItems = 5

	viewWeight     = 1
	downloadWeight = 2
	ratingWeight   = 5
)

// uploaderStatsRepository aggregates one user's document footprint
type uploaderStatsRepository interface {
	GetUploaderTotals(ctx context.Context, userID int64) (*repositories.UploaderTotals, error)
	GetUploadsPerDay(ctx context.Context, userID int64, days int) ([]repositories.DailyUploads, error)
	GetTopDocumentsByUploader(ctx context.Context, userID int64, limit int) ([]models.Document, error)
	GetDocumentsByUploaderID(ctx context.Context, userID int64, page, size int) ([]models.Document, dto.PaginationInfo, error)
}

// ratingStatsRepository aggregates a user's rating activity
type ratingStatsRepository interface {
	CountRatingsByUserID(ctx context.Context, userID int64) (int64, error)
	GetAverageScoreGivenByUser(ctx context.Context, userID int64) (float64, error)
	GetRatingsByUserID(ctx context.Context, userID int64, page, size int) ([]models.Rating, dto.PaginationInfo, error)
}

// bookmarkStatsRepository reads a user's bookmark activity
type bookmarkStatsRepository interface {
	CountBookmarksByUserID(ctx context.Context, userID int64) (int64, error)
	GetBookmarksByUserID(ctx context.Context, userID int64, page, size int) ([]models.Bookmark, []models.Document, dto.PaginationInfo, error)
}

// DashboardService defines the interface for the personal statistics dashboard
type DashboardService interface {
	GetPersonalStatistics(ctx context.Context, userID int64) (*dto.PersonalStatisticsResponse, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	documentRepo uploaderStatsRepository
	ratingRepo   ratingStatsRepository
	bookmarkRepo bookmarkStatsRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	documentRepo uploaderStatsRepository,
	ratingRepo ratingStatsRepository,
	bookmarkRepo bookmarkStatsRepository,
) DashboardService {
	return &dashboardServiceImpl{
		documentRepo: documentRepo,
		ratingRepo:   ratingRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// PopularityScore weighs a user's activity: 1 point per view their documents
// received, 2 per download and 5 per rating they gave.
func PopularityScore(views, downloads, ratingsGiven int64) int64 {
	return views*viewWeight + downloads*downloadWeight + ratingsGiven*ratingWeight
}

// documentsPerDay averages the user's uploads over the days since their first
// upload, rounded to two decimals. A user whose first upload happened today
// gets their full document count.
func documentsPerDay(totalDocuments int64, firstUpload *time.Time) float64 {
	if totalDocuments == 0 || firstUpload == nil {
		return 0
	}
	days := int64(time.Since(*firstUpload).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return math.Round(float64(totalDocuments)/float64(days)*100) / 100
}

// GetPersonalStatistics assembles a user's dashboard: upload totals, activity
// counts, popularity score, the uploads-per-day series, the user's most viewed
// documents and their recent activity. The numbers come from separate queries,
// so under concurrent writes the dashboard is a close approximation rather
// than a single snapshot.
func (s *dashboardServiceImpl) GetPersonalStatistics(ctx context.Context, userID int64) (*dto.PersonalStatisticsResponse, error) {
	totals, err := s.documentRepo.GetUploaderTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating document totals: %w", err)
	}

	ratingsGiven, err := s.ratingRepo.CountRatingsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting ratings given: %w", err)
	}

	avgGiven, err := s.ratingRepo.GetAverageScoreGivenByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error computing average score given: %w", err)
	}

	bookmarks, err := s.bookmarkRepo.CountBookmarksByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting bookmarks: %w", err)
	}

	uploads, err := s.documentRepo.GetUploadsPerDay(ctx, userID, DashboardDays)
	if err != nil {
		return nil, fmt.Errorf("error loading uploads per day: %w", err)
	}

	topDocs, err := s.documentRepo.GetTopDocumentsByUploader(ctx, userID, DashboardTopDocuments)
	if err != nil {
		return nil, fmt.Errorf("error loading top documents: %w", err)
	}

	recentDocs, _, err := s.documentRepo.GetDocumentsByUploaderID(ctx, userID, 1, DashboardRecentItems)
	if err != nil {
		return nil, fmt.Errorf("error loading recent uploads: %w", err)
	}

	recentRatings, _, err := s.ratingRepo.GetRatingsByUserID(ctx, userID, 1, DashboardRecentItems)
	if err != nil {
		return nil, fmt.Errorf("error loading recent ratings: %w", err)
	}

	recentBookmarks, bookmarkedDocs, _, err := s.bookmarkRepo.GetBookmarksByUserID(ctx, userID, 1, DashboardRecentItems)
	if err != nil {
		return nil, fmt.Errorf("error loading recent bookmarks: %w", err)
	}

	perDay := make([]dto.DailyUploadCount, 0, len(uploads))
	for _, bucket := range uploads {
		perDay = append(perDay, dto.DailyUploadCount{
			Date:  bucket.Date.Format("2006-01-02"),
			Count: bucket.Count,
		})
	}

	bookmarkResponses := make([]dto.BookmarkResponse, 0, len(recentBookmarks))
	for i := range recentBookmarks {
		var doc *models.Document
		if i < len(bookmarkedDocs) {
			doc = &bookmarkedDocs[i]
		}
		bookmarkResponses = append(bookmarkResponses, dto.FromBookmark(&recentBookmarks[i], doc))
	}

	return &dto.PersonalStatisticsResponse{
		UserID:             userID,
		TotalDocuments:     totals.TotalDocuments,
		TotalViews:         totals.TotalViews,
		TotalDownloads:     totals.TotalDownloads,
		TotalBookmarks:     bookmarks,
		RatingsGiven:       ratingsGiven,
		RatingsReceived:    totals.RatingsReceived,
		AverageRatingGiven: avgGiven,
		PopularityScore:    PopularityScore(totals.TotalViews, totals.TotalDownloads, ratingsGiven),
		DocumentsPerDay:    documentsPerDay(totals.TotalDocuments, totals.FirstUploadDate),
		UploadsPerDay:      perDay,
		TopDocuments:       dto.FromDocuments(topDocs),
		RecentDocuments:    dto.FromDocuments(recentDocs),
		RecentRatings:      dto.FromRatings(recentRatings),
		RecentBookmarks:    bookmarkResponses,
	}, nil
}
