package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/derya/castlink/internal/app/models/dto"
	"github.com/derya/castlink/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found"),
		})
		return
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Invalid request data")),
		})
		return
	case errors.Is(err, apperrors.ErrBucketMissing):
		// The message carries the remediation steps for the operator.
		c.JSON(503, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeBucketMissing, messageOf(err, "Storage bucket missing")).
				WithSeverity(dto.ErrorSeverityCritical),
		})
		return
	case errors.Is(err, apperrors.ErrObjectExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Photo object already exists"),
		})
		return
	case errors.Is(err, apperrors.ErrUploadFailed):
		c.JSON(502, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUploadFailed, messageOf(err, "Photo upload failed")),
		})
		return
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
		return
	}
}

// messageOf prefers the CustomError message over a generic fallback.
func messageOf(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
