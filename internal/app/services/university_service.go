package services

import (
	"context"
	"fmt"

	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// universityRepository is the persistence surface for the reference catalog
type universityRepository interface {
	GetAllUniversities(ctx context.Context) ([]models.University, error)
	GetUniversityByID(ctx context.Context, id int64) (*models.University, error)
	CreateUniversity(ctx context.Context, u *models.University) (int64, error)
}

// subjectRepository is the persistence surface for subjects
type subjectRepository interface {
	GetSubjects(ctx context.Context, universityID *int64) ([]models.Subject, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	CreateSubject(ctx context.Context, s *models.Subject) (int64, error)
}

// UniversityService defines the interface for reference catalog operations
type UniversityService interface {
	GetUniversities(ctx context.Context) ([]dto.UniversityResponse, error)
	GetUniversity(ctx context.Context, id int64) (*dto.UniversityResponse, error)
	CreateUniversity(ctx context.Context, actor auth.Actor, name, code, description string) (*dto.UniversityResponse, error)
	GetSubjects(ctx context.Context, universityID *int64) ([]dto.SubjectResponse, error)
	CreateSubject(ctx context.Context, actor auth.Actor, name, code string, universityID int64) (*dto.SubjectResponse, error)
}

// universityServiceImpl implements UniversityService
type universityServiceImpl struct {
	universityRepo universityRepository
	subjectRepo    subjectRepository
	policy         *auth.PolicyService
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(universityRepo universityRepository, subjectRepo subjectRepository, policy *auth.PolicyService) UniversityService {
	return &universityServiceImpl{
		universityRepo: universityRepo,
		subjectRepo:    subjectRepo,
		policy:         policy,
	}
}

// GetUniversities lists all universities
func (s *universityServiceImpl) GetUniversities(ctx context.Context) ([]dto.UniversityResponse, error) {
	universities, err := s.universityRepo.GetAllUniversities(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing universities: %w", err)
	}
	responses := make([]dto.UniversityResponse, 0, len(universities))
	for i := range universities {
		responses = append(responses, dto.FromUniversity(&universities[i]))
	}
	return responses, nil
}

// GetUniversity retrieves a single university
func (s *universityServiceImpl) GetUniversity(ctx context.Context, id int64) (*dto.UniversityResponse, error) {
	university, err := s.universityRepo.GetUniversityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUniversity(university)
	return &resp, nil
}

// CreateUniversity adds a university to the catalog. Admin only.
func (s *universityServiceImpl) CreateUniversity(ctx context.Context, actor auth.Actor, name, code, description string) (*dto.UniversityResponse, error) {
	if err := s.policy.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.NewValidationError("University name is required")
	}

	university := &models.University{Name: name, Code: code, Description: description}
	if _, err := s.universityRepo.CreateUniversity(ctx, university); err != nil {
		return nil, err
	}

	resp := dto.FromUniversity(university)
	return &resp, nil
}

// GetSubjects lists subjects, optionally filtered by university
func (s *universityServiceImpl) GetSubjects(ctx context.Context, universityID *int64) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.GetSubjects(ctx, universityID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		responses = append(responses, dto.FromSubject(&subjects[i]))
	}
	return responses, nil
}

// CreateSubject adds a subject to a university. Admin only.
func (s *universityServiceImpl) CreateSubject(ctx context.Context, actor auth.Actor, name, code string, universityID int64) (*dto.SubjectResponse, error) {
	if err := s.policy.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.NewValidationError("Subject name is required")
	}
	if _, err := s.universityRepo.GetUniversityByID(ctx, universityID); err != nil {
		return nil, err
	}

	subject := &models.Subject{Name: name, Code: code, UniversityID: universityID}
	if _, err := s.subjectRepo.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	resp := dto.FromSubject(subject)
	return &resp, nil
}
