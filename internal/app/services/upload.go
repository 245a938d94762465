package services

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/filestorage"
	"github.com/yigit/edutube/internal/pkg/validation"
)

// Storage subdirectories
const (
	VideoDir = "videos"
	NoteDir  = "notes"
)

// uploadRules checks an upload before anything touches the disk
type uploadRules struct {
	maxSize     int64
	typePrefix  string
	typeMessage string
}

func (r uploadRules) check(req *dto.UploadRequest, fh *multipart.FileHeader) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}
	if fh == nil {
		return "", apperrors.NewValidationError("file is required").
			WithDetails(map[string]interface{}{"file": "file is required"})
	}

	contentType := filestorage.DetectContentType(fh)
	if r.typePrefix != "" && !strings.HasPrefix(contentType, r.typePrefix) {
		return "", apperrors.NewCustomError(apperrors.ErrUnsupportedMedia, r.typeMessage).
			WithDetails(map[string]interface{}{"file": "unsupported content type " + contentType})
	}
	if r.maxSize > 0 && fh.Size > r.maxSize {
		return "", apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the maximum upload size of %d bytes", r.maxSize))
	}
	return contentType, nil
}
