package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

func TestIsAllowedExtension(t *testing.T) {
	assert.True(t, IsAllowedExtension("notes.pdf"))
	assert.True(t, IsAllowedExtension("slides.pptx"))
	assert.True(t, IsAllowedExtension("report.DOCX"))
	assert.True(t, IsAllowedExtension("Readings.TXT"))

	assert.False(t, IsAllowedExtension("setup.exe"))
	assert.False(t, IsAllowedExtension("archive.zip"))
	assert.False(t, IsAllowedExtension("noextension"))
	assert.False(t, IsAllowedExtension(""))
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("notes.pdf", 1024))
	assert.NoError(t, ValidateUpload("notes.pdf", MaxUploadSize))

	assert.ErrorIs(t, ValidateUpload("", 1024), apperrors.ErrFileRequired)
	assert.ErrorIs(t, ValidateUpload("notes.pdf", 0), apperrors.ErrFileRequired)
	assert.ErrorIs(t, ValidateUpload("notes.pdf", MaxUploadSize+1), apperrors.ErrFileTooLarge)
	assert.ErrorIs(t, ValidateUpload("setup.exe", 1024), apperrors.ErrFileTypeNotAllowed)
}

func TestValidateScore(t *testing.T) {
	for score := ScoreMin; score <= ScoreMax; score++ {
		assert.NoError(t, ValidateScore(score))
	}

	assert.ErrorIs(t, ValidateScore(0), apperrors.ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(6), apperrors.ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(-1), apperrors.ErrScoreOutOfRange)
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment(""))
	assert.NoError(t, ValidateComment(strings.Repeat("a", CommentMaxLength)))

	assert.ErrorIs(t, ValidateComment(strings.Repeat("a", CommentMaxLength+1)), apperrors.ErrCommentTooLong)
}

func TestValidateDocumentMeta(t *testing.T) {
	assert.NoError(t, ValidateDocumentMeta("Algorithms notes", ""))
	assert.NoError(t, ValidateDocumentMeta(strings.Repeat("t", TitleMaxLength), strings.Repeat("d", DescriptionMaxLength)))

	assert.ErrorIs(t, ValidateDocumentMeta("", "desc"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateDocumentMeta("   ", "desc"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateDocumentMeta(strings.Repeat("t", TitleMaxLength+1), ""), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateDocumentMeta("ok", strings.Repeat("d", DescriptionMaxLength+1)), apperrors.ErrValidationFailed)
}
