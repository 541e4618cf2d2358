package dto

import (
	"time"

	"github.com/trungle/unidocs/internal/app/models"
)

// CreateDocumentRequest represents the multipart form fields for an upload.
// The file itself is bound separately from the form.
type CreateDocumentRequest struct {
	Title        string `form:"title" binding:"required,max=200"`
	Description  string `form:"description" binding:"max=1000"`
	UniversityID *int64 `form:"universityId"`
	SubjectID    *int64 `form:"subjectId"`
	PageCount    *int   `form:"pageCount"`
}

// UpdateDocumentRequest represents the fields that can be edited on a document
type UpdateDocumentRequest struct {
	Title        string `form:"title" binding:"required,max=200"`
	Description  string `form:"description" binding:"max=1000"`
	UniversityID *int64 `form:"universityId"`
	SubjectID    *int64 `form:"subjectId"`
}

// UpdateDocumentStatusRequest changes the informational review status
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED HIDDEN"`
}

// DocumentSearchRequest carries catalog search filters
type DocumentSearchRequest struct {
	Keyword      string
	UniversityID *int64
	SubjectID    *int64
	FileType     string
	Page         int
	PageSize     int
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	OriginalFileName string     `json:"originalFileName"`
	FileType         string     `json:"fileType"`
	FileSize         int64      `json:"fileSize"`
	PageCount        *int       `json:"pageCount,omitempty"`
	UserID           int64      `json:"userId"`
	UploaderName     string     `json:"uploaderName,omitempty"`
	UniversityID     *int64     `json:"universityId,omitempty"`
	UniversityName   string     `json:"universityName,omitempty"`
	SubjectID        *int64     `json:"subjectId,omitempty"`
	SubjectName      string     `json:"subjectName,omitempty"`
	AverageRating    float64    `json:"averageRating"`
	RatingCount      int        `json:"ratingCount"`
	ViewCount        int64      `json:"viewCount"`
	DownloadCount    int64      `json:"downloadCount"`
	Status           string     `json:"status"`
	UploadDate       time.Time  `json:"uploadDate"`
	LastUpdated      *time.Time `json:"lastUpdated,omitempty"`
}

// DocumentListResponse represents a paginated list of documents
type DocumentListResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Pagination PaginationInfo     `json:"pagination"`
}

// FromDocument converts a models.Document to a DocumentResponse
func FromDocument(doc *models.Document) DocumentResponse {
	if doc == nil {
		return DocumentResponse{}
	}

	resp := DocumentResponse{
		ID:               doc.ID,
		Title:            doc.Title,
		Description:      doc.Description,
		OriginalFileName: doc.OriginalFileName,
		FileType:         doc.FileType,
		FileSize:         doc.FileSize,
		PageCount:        doc.PageCount,
		UserID:           doc.UserID,
		UploaderName:     doc.UploaderName,
		UniversityID:     doc.UniversityID,
		SubjectID:        doc.SubjectID,
		AverageRating:    doc.AverageRating,
		RatingCount:      doc.RatingCount,
		ViewCount:        doc.ViewCount,
		DownloadCount:    doc.DownloadCount,
		Status:           string(doc.Status),
		UploadDate:       doc.UploadDate,
		LastUpdated:      doc.LastUpdated,
	}

	if doc.University != nil {
		resp.UniversityName = doc.University.Name
	}
	if doc.Subject != nil {
		resp.SubjectName = doc.Subject.Name
	}

	return resp
}

// FromDocuments converts a slice of documents to responses
func FromDocuments(docs []models.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, FromDocument(&docs[i]))
	}
	return responses
}
