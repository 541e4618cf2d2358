package models

import "time"

// DocumentStatus represents the review state of a document. It is informational
// only; no status transition rules are enforced.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "PENDING"
	StatusApproved DocumentStatus = "APPROVED"
	StatusRejected DocumentStatus = "REJECTED"
	StatusHidden   DocumentStatus = "HIDDEN"
)

// IsValidDocumentStatus reports whether s is one of the known statuses.
func IsValidDocumentStatus(s DocumentStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusHidden:
		return true
	}
	return false
}

// Document represents an uploaded document in the catalog.
//
// AverageRating and RatingCount are denormalized aggregates over the document's
// ratings: AverageRating is the mean score rounded to 1 decimal (0 with no
// ratings), RatingCount the number of rating rows. They are recomputed from the
// ratings table inside the same transaction as every rating write.
type Document struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	FilePath         string         `json:"filePath"`
	OriginalFileName string         `json:"originalFileName"`
	FileType         string         `json:"fileType"`
	FileSize         int64          `json:"fileSize"`
	PageCount        *int           `json:"pageCount,omitempty"`
	UserID           int64          `json:"userId"`
	UniversityID     *int64         `json:"universityId,omitempty"`
	SubjectID        *int64         `json:"subjectId,omitempty"`
	AverageRating    float64        `json:"averageRating"`
	RatingCount      int            `json:"ratingCount"`
	ViewCount        int64          `json:"viewCount"`
	DownloadCount    int64          `json:"downloadCount"`
	Status           DocumentStatus `json:"status"`
	UploadDate       time.Time      `json:"uploadDate"`
	LastUpdated      *time.Time     `json:"lastUpdated,omitempty"`

	// Relations
	University *University `json:"university,omitempty"`
	Subject    *Subject    `json:"subject,omitempty"`
	UploaderName string    `json:"uploaderName,omitempty"`
}
