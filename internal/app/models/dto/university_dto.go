package dto

import "github.com/trungle/unidocs/internal/app/models"

// CreateUniversityRequest carries fields for a new university
type CreateUniversityRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Code        string `json:"code" binding:"max=20"`
	Description string `json:"description" binding:"max=1000"`
}

// CreateSubjectRequest carries fields for a new subject
type CreateSubjectRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Code         string `json:"code" binding:"max=20"`
	UniversityID int64  `json:"universityId" binding:"required"`
}

// UniversityResponse represents a university in API responses
type UniversityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SubjectResponse represents a subject in API responses
type SubjectResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	UniversityID int64  `json:"universityId"`
}

// FromUniversity converts a models.University to a response
func FromUniversity(u *models.University) UniversityResponse {
	return UniversityResponse{
		ID:          u.ID,
		Name:        u.Name,
		Code:        u.Code,
		Description: u.Description,
	}
}

// FromSubject converts a models.Subject to a response
func FromSubject(s *models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		UniversityID: s.UniversityID,
	}
}
