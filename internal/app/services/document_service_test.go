package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trungle/unidocs/internal/app/auth"
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// MockDocumentRepository mocks the documentRepository interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) SearchDocuments(ctx context.Context, params dto.DocumentSearchRequest) ([]models.Document, dto.PaginationInfo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(dto.PaginationInfo), args.Error(2)
	}
	return args.Get(0).([]models.Document), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *MockDocumentRepository) GetDocumentsByUploaderID(ctx context.Context, userID int64, page, size int) ([]models.Document, dto.PaginationInfo, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(dto.PaginationInfo), args.Error(2)
	}
	return args.Get(0).([]models.Document), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc *models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, id int64, status models.DocumentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) IncrementViewCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetRecentDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetMostViewedDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetMostDownloadedDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetTopRatedDocuments(ctx context.Context, limit, minRatings int) ([]models.Document, error) {
	args := m.Called(ctx, limit, minRatings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

// MockUniversityFinder mocks the universityFinder interface
type MockUniversityFinder struct {
	mock.Mock
}

func (m *MockUniversityFinder) GetUniversityByID(ctx context.Context, id int64) (*models.University, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.University), args.Error(1)
}

// MockSubjectFinder mocks the subjectFinder interface
type MockSubjectFinder struct {
	mock.Mock
}

func (m *MockSubjectFinder) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

// MockFileStorage mocks the filestorage.FileStorage interface
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	args := m.Called(fileHeader)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(pathToken string) error {
	args := m.Called(pathToken)
	return args.Error(0)
}

func (m *MockFileStorage) GetFullPath(pathToken string) string {
	args := m.Called(pathToken)
	return args.String(0)
}

func newDocumentService(docRepo *MockDocumentRepository, uniFinder *MockUniversityFinder, subjFinder *MockSubjectFinder, storage *MockFileStorage) DocumentService {
	return NewDocumentService(docRepo, uniFinder, subjFinder, storage, auth.NewPolicyService())
}

func TestCreateDocument_FileRequired(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	_, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{Title: "Notes"}, nil)

	assert.ErrorIs(t, err, apperrors.ErrFileRequired)
	storage.AssertNotCalled(t, "SaveFile", mock.Anything)
}

func TestCreateDocument_RejectsDisallowedExtension(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "malware.exe", Size: 1024}

	_, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{Title: "Notes"}, file)

	assert.ErrorIs(t, err, apperrors.ErrFileTypeNotAllowed)
	storage.AssertNotCalled(t, "SaveFile", mock.Anything)
}

func TestCreateDocument_RejectsOversizedFile(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "big.pdf", Size: 51 * 1024 * 1024}

	_, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{Title: "Notes"}, file)

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	storage.AssertNotCalled(t, "SaveFile", mock.Anything)
}

func TestCreateDocument_CleansUpFileOnInsertFailure(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}

	storage.On("SaveFile", file).Return("uploads/abc.pdf", nil)
	docRepo.On("CreateDocument", mock.Anything, mock.AnythingOfType("*models.Document")).
		Return(int64(0), errors.New("insert failed"))
	storage.On("DeleteFile", "uploads/abc.pdf").Return(nil)

	_, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{Title: "Notes"}, file)

	assert.Error(t, err)
	storage.AssertCalled(t, "DeleteFile", "uploads/abc.pdf")
}

func TestCreateDocument_SubjectMustBelongToUniversity(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	uniFinder := new(MockUniversityFinder)
	subjFinder := new(MockSubjectFinder)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, uniFinder, subjFinder, storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}
	universityID := int64(1)
	subjectID := int64(5)

	uniFinder.On("GetUniversityByID", mock.Anything, int64(1)).
		Return(&models.University{ID: 1}, nil)
	subjFinder.On("GetSubjectByID", mock.Anything, int64(5)).
		Return(&models.Subject{ID: 5, UniversityID: 2}, nil)

	_, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{
		Title:        "Notes",
		UniversityID: &universityID,
		SubjectID:    &subjectID,
	}, file)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	storage.AssertNotCalled(t, "SaveFile", mock.Anything)
}

func TestCreateDocument_NewDocumentIsApproved(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}

	storage.On("SaveFile", file).Return("uploads/abc.pdf", nil)

	var created *models.Document
	docRepo.On("CreateDocument", mock.Anything, mock.AnythingOfType("*models.Document")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Document)
			created.ID = 42
		}).
		Return(int64(42), nil)
	docRepo.On("GetDocumentByID", mock.Anything, int64(42)).
		Return(&models.Document{ID: 42, Title: "Notes", UserID: 7, Status: models.StatusApproved}, nil)

	resp, err := service.CreateDocument(context.Background(), actor, &dto.CreateDocumentRequest{Title: "Notes"}, file)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	if assert.NotNil(t, created) {
		assert.Equal(t, models.StatusApproved, created.Status)
	}
}

func TestGetDocument_ViewIncrementIsBestEffort(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, Title: "Notes", ViewCount: 41}, nil)
	docRepo.On("IncrementViewCount", mock.Anything, int64(1)).
		Return(errors.New("connection reset"))

	// A failed counter update must not fail the read
	doc, err := service.GetDocument(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(41), doc.ViewCount)
}

func TestGetDocument_RecordsView(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, Title: "Notes", ViewCount: 41}, nil)
	docRepo.On("IncrementViewCount", mock.Anything, int64(1)).Return(nil)

	doc, err := service.GetDocument(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), doc.ViewCount)
	docRepo.AssertExpectations(t)
}

func TestDownloadDocument_CountFailureStillServesFile(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, FilePath: "uploads/abc.pdf", OriginalFileName: "notes.pdf"}, nil)
	docRepo.On("IncrementDownloadCount", mock.Anything, int64(1)).
		Return(errors.New("connection reset"))
	storage.On("GetFullPath", "uploads/abc.pdf").Return("/srv/uploads/abc.pdf")

	fullPath, originalName, err := service.DownloadDocument(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "/srv/uploads/abc.pdf", fullPath)
	assert.Equal(t, "notes.pdf", originalName)
}

func TestDeleteDocument_ForbiddenForOtherUser(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 8, Role: models.RoleStudent}

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, UserID: 7}, nil)

	err := service.DeleteDocument(context.Background(), actor, 1)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	docRepo.AssertNotCalled(t, "DeleteDocument", mock.Anything, mock.Anything)
}

func TestDeleteDocument_OwnerDeletesAndFileIsRemoved(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, UserID: 7, FilePath: "uploads/abc.pdf"}, nil)
	docRepo.On("DeleteDocument", mock.Anything, int64(1)).Return("uploads/abc.pdf", nil)
	storage.On("DeleteFile", "uploads/abc.pdf").Return(nil)

	err := service.DeleteDocument(context.Background(), actor, 1)

	assert.NoError(t, err)
	docRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUpdateDocument_ReplacingFileRemovesOldFile(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	actor := auth.Actor{UserID: 7, Role: models.RoleStudent}
	file := &multipart.FileHeader{Filename: "v2.pdf", Size: 2048}

	docRepo.On("GetDocumentByID", mock.Anything, int64(1)).
		Return(&models.Document{ID: 1, UserID: 7, Title: "Notes", FilePath: "uploads/old.pdf"}, nil)
	storage.On("SaveFile", file).Return("uploads/new.pdf", nil)
	docRepo.On("UpdateDocument", mock.Anything, mock.AnythingOfType("*models.Document")).Return(nil)
	storage.On("DeleteFile", "uploads/old.pdf").Return(nil)

	_, err := service.UpdateDocument(context.Background(), actor, 1, &dto.UpdateDocumentRequest{Title: "Notes v2"}, file)

	assert.NoError(t, err)
	storage.AssertCalled(t, "DeleteFile", "uploads/old.pdf")
}

func TestUpdateDocumentStatus_AdminOnly(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	student := auth.Actor{UserID: 7, Role: models.RoleStudent}
	err := service.UpdateDocumentStatus(context.Background(), student, 1, "APPROVED")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	admin := auth.Actor{UserID: 99, Role: models.RoleAdmin}
	docRepo.On("UpdateDocumentStatus", mock.Anything, int64(1), models.StatusApproved).Return(nil)
	err = service.UpdateDocumentStatus(context.Background(), admin, 1, "APPROVED")
	assert.NoError(t, err)
}

func TestUpdateDocumentStatus_RejectsUnknownStatus(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	storage := new(MockFileStorage)
	service := newDocumentService(docRepo, new(MockUniversityFinder), new(MockSubjectFinder), storage)

	admin := auth.Actor{UserID: 99, Role: models.RoleAdmin}

	err := service.UpdateDocumentStatus(context.Background(), admin, 1, "ARCHIVED")

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	docRepo.AssertNotCalled(t, "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything)
}
