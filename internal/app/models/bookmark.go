package models

import "time"

// Bookmark marks a document as saved by a user. The (user, document) pair is
// unique, backed by the bookmarks_user_document_key index.
type Bookmark struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	DocumentID int64     `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
}
