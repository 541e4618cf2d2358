package models

// Subject represents a subject taught at a university
type Subject struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	UniversityID int64  `json:"universityId"`

	University *University `json:"university,omitempty"`
}
