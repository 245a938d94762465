package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. Rule validation happens in
// the services; this only rejects bodies that cannot be decoded.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return invalidRequest("request body must be valid JSON", err)
	}
	return nil
}

// BindForm decodes multipart or urlencoded form fields into obj
func BindForm(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.NewCustomError(apperrors.ErrFileTooLarge, "request body is too large")
		}
		return invalidRequest("request form could not be parsed", err)
	}
	return nil
}

func invalidRequest(message string, cause error) error {
	return apperrors.NewValidationError(message).
		WithCode(string(dto.ErrorCodeInvalidRequest)).
		WithDetails(map[string]interface{}{"body": cause.Error()})
}
