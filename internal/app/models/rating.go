package models

import "time"

// Rating represents a user's score for a document. At most one rating exists
// per (document, user) pair; the pair is enforced by the upsert transaction,
// not by a database constraint.
type Rating struct {
	ID         int64      `json:"id"`
	DocumentID int64      `json:"documentId"`
	UserID     int64      `json:"userId"`
	Score      int        `json:"score"`
	Comment    string     `json:"comment,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`

	// Relations
	RaterName     string `json:"raterName,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
}
