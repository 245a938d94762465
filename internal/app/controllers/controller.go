package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/middleware"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

// formOverhead is the body allowance on top of the file limit for the
// multipart framing and text fields
const formOverhead = 1 << 20

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}

// readUpload binds the text fields of an upload form and returns the file
// part. A missing file yields a nil header so the service reports it.
func readUpload(ctx *gin.Context, maxUploadSize int64) (*dto.UploadRequest, *multipart.FileHeader, error) {
	if maxUploadSize > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadSize+formOverhead)
	}

	var req dto.UploadRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		return nil, nil, err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			return &req, nil, nil
		case errors.As(err, &maxErr):
			return nil, nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge, "request body is too large")
		default:
			return nil, nil, apperrors.NewValidationError("file could not be read").
				WithCode(string(dto.ErrorCodeInvalidRequest))
		}
	}
	return &req, file, nil
}
