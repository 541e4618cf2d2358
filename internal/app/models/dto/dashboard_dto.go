package dto

// DailyUploadCount is one bucket of the uploads-per-day series
type DailyUploadCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// PersonalStatisticsResponse aggregates a user's portal activity
type PersonalStatisticsResponse struct {
	UserID             int64              `json:"userId"`
	TotalDocuments     int64              `json:"totalDocuments"`
	TotalViews         int64              `json:"totalViews"`
	TotalDownloads     int64              `json:"totalDownloads"`
	TotalBookmarks     int64              `json:"totalBookmarks"`
	RatingsGiven       int64              `json:"ratingsGiven"`
	RatingsReceived    int64              `json:"ratingsReceived"`
	AverageRatingGiven float64            `json:"averageRatingGiven"`
	PopularityScore    int64              `json:"popularityScore"`
	DocumentsPerDay    float64            `json:"documentsPerDay"`
	UploadsPerDay      []DailyUploadCount `json:"uploadsPerDay"`
	TopDocuments       []DocumentResponse `json:"topDocuments"`
	RecentDocuments    []DocumentResponse `json:"recentDocuments"`
	RecentRatings      []RatingResponse   `json:"recentRatings"`
	RecentBookmarks    []BookmarkResponse `json:"recentBookmarks"`
}
