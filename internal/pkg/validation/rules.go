package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// Upload rules. MaxUploadSize is the single authoritative limit for document
// uploads and is enforced in the document service only.
const (
	MaxUploadSize = 50 * 1024 * 1024 // 50MB

	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
	CommentMaxLength     = 500

	ScoreMin = 1
	ScoreMax = 5
)

// AllowedExtensions lists the file extensions accepted for document uploads.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xlsx", ".txt"}

// IsAllowedExtension reports whether the given filename carries an allowed
// extension. The comparison is case-insensitive.
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ValidateUpload checks filename and size against the upload rules.
func ValidateUpload(filename string, size int64) error {
	if filename == "" || size == 0 {
		return apperrors.ErrFileRequired
	}
	if size > MaxUploadSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the maximum size of %dMB", MaxUploadSize/(1024*1024)))
	}
	if !IsAllowedExtension(filename) {
		return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
			fmt.Sprintf("allowed file types: %s", strings.Join(AllowedExtensions, ", ")))
	}
	return nil
}

// ValidateScore checks a rating score against the allowed range.
func ValidateScore(score int) error {
	if score < ScoreMin || score > ScoreMax {
		return apperrors.ErrScoreOutOfRange
	}
	return nil
}

// ValidateComment checks an optional rating comment against the length bound.
func ValidateComment(comment string) error {
	if len(comment) > CommentMaxLength {
		return apperrors.ErrCommentTooLong
	}
	return nil
}

// ValidateDocumentMeta checks title and description bounds.
func ValidateDocumentMeta(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if len(title) > TitleMaxLength {
		return apperrors.NewValidationError(fmt.Sprintf("title must not exceed %d characters", TitleMaxLength))
	}
	if len(description) > DescriptionMaxLength {
		return apperrors.NewValidationError(fmt.Sprintf("description must not exceed %d characters", DescriptionMaxLength))
	}
	return nil
}
