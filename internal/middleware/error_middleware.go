package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/logger"
)

// HandleAPIError maps err onto the error envelope and aborts the request.
// Internal errors are logged with their cause and answered generically.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var status int
	var code dto.ErrorCode
	var fallback string

	switch apperrors.Classify(err) {
	case apperrors.CategoryUnauthenticated:
		status, fallback = http.StatusUnauthorized, "Authentication required"
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			code, fallback = dto.ErrorCodeInvalidCredentials, "Invalid credentials"
		case errors.Is(err, apperrors.ErrTokenExpired):
			code, fallback = dto.ErrorCodeExpiredToken, "Token has expired"
		case errors.Is(err, apperrors.ErrInvalidFormat):
			code, fallback = dto.ErrorCodeInvalidToken, "Invalid token format"
		case errors.Is(err, apperrors.ErrTokenInvalid):
			code, fallback = dto.ErrorCodeInvalidToken, "Invalid token"
		default:
			code = dto.ErrorCodeUnauthorized
		}
	case apperrors.CategoryForbidden:
		status, code, fallback = http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	case apperrors.CategoryNotFound:
		status, code, fallback = http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"
	case apperrors.CategoryValidation:
		status, code, fallback = http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"
	default:
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		return http.StatusInternalServerError, detail
	}

	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Code != "" {
		code = dto.ErrorCode(ce.Code)
	}

	detail := dto.NewErrorDetail(code, apperrors.MessageOf(err, fallback)).
		WithDetails(apperrors.DetailsOf(err))
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		detail = detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	return status, detail
}
