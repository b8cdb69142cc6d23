package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-server/internal/app/drafts"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to API responses. Validation and
// not-found errors carry messages written for the reader, so those are
// surfaced as-is; anything unrecognized becomes an opaque 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoteNotFound),
		errors.Is(err, apperrors.ErrYearNotFound),
		errors.Is(err, apperrors.ErrUnitNotFound),
		errors.Is(err, apperrors.ErrLecturerNotFound),
		errors.Is(err, apperrors.ErrAdminNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case errors.Is(err, apperrors.ErrSlugTaken),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))
	case errors.Is(err, apperrors.ErrUnitYearMismatch):
		c.JSON(400, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrValidationFailed):
		// The message is the form rule text, e.g. "Title is required"
		c.JSON(400, dto.NewAPIError(validationDetail(err)))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, err.Error())))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	default:
		c.JSON(500, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// validationDetail keeps the failing field when the draft pipeline reports one
func validationDetail(err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	var fieldErr *drafts.FieldError
	if errors.As(err, &fieldErr) {
		detail = detail.WithField(fieldErr.Field)
	}
	return detail
}
