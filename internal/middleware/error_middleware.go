package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trungle/unidocs/internal/app/models/dto"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
	"github.com/trungle/unidocs/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// this instead of translating errors themselves, so every endpoint reports
// the same codes for the same failures.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Document not found")
	case errors.Is(err, apperrors.ErrRatingNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Rating not found")
	case errors.Is(err, apperrors.ErrBookmarkNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Bookmark not found")
	case errors.Is(err, apperrors.ErrUniversityNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "University not found")
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subject not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrFileRequired):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "A document file is required")
	case errors.Is(err, apperrors.ErrFileTypeNotAllowed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "File type is not allowed")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "File exceeds the maximum allowed size")
	case errors.Is(err, apperrors.ErrScoreOutOfRange):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Score must be between 1 and 5")
	case errors.Is(err, apperrors.ErrCommentTooLong):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Comment exceeds the maximum length")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrStorageFailure):
		respond(http.StatusInternalServerError, dto.ErrorCodeStorageFailure, "File storage operation failed")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
