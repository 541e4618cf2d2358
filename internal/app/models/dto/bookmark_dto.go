package dto

import (
	"time"

	"github.com/trungle/unidocs/internal/app/models"
)

// ToggleBookmarkResponse reports the state of a bookmark after a toggle
type ToggleBookmarkResponse struct {
	DocumentID int64 `json:"documentId"`
	Bookmarked bool  `json:"bookmarked"`
}

// BookmarkResponse represents a saved document entry
type BookmarkResponse struct {
	ID         int64            `json:"id"`
	DocumentID int64            `json:"documentId"`
	CreatedAt  time.Time        `json:"createdAt"`
	Document   DocumentResponse `json:"document"`
}

// BookmarkListResponse represents a paginated list of bookmarks
type BookmarkListResponse struct {
	Bookmarks  []BookmarkResponse `json:"bookmarks"`
	Pagination PaginationInfo     `json:"pagination"`
}

// FromBookmark converts a bookmark with its document to a response
func FromBookmark(bookmark *models.Bookmark, doc *models.Document) BookmarkResponse {
	resp := BookmarkResponse{
		ID:         bookmark.ID,
		DocumentID: bookmark.DocumentID,
		CreatedAt:  bookmark.CreatedAt,
	}
	if doc != nil {
		resp.Document = FromDocument(doc)
	}
	return resp
}
