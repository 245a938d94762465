package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/edutube/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory on disk
	baseURL  string // public prefix the root is served under, e.g. /uploads
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates the storage root if needed
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the storage root on disk
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Save writes the upload under subDir with a UUID name keeping the original extension
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subDir string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, errors.New("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	subDir = strings.Trim(path.Clean("/"+filepath.ToSlash(subDir)), "/")
	dir := filepath.Join(ls.basePath, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	original := filepath.Base(fileHeader.Filename)
	ext := strings.ToLower(filepath.Ext(original))
	name := uuid.New().String() + ext
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	rel := path.Join(subDir, name)
	stored := &StoredFile{
		Filename:         name,
		OriginalFilename: original,
		Path:             rel,
		URL:              ls.baseURL + "/" + rel,
		Size:             written,
		ContentType:      DetectContentType(fileHeader),
	}

	logger.Info().Str("filename", original).Str("saved_as", rel).Int64("size", written).Msg("File saved successfully")
	return stored, nil
}

// Delete removes a file by its storage-relative path
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}

	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(relPath)), "/")
	if clean == "" {
		return fmt.Errorf("invalid file path: %s", relPath)
	}
	physical := filepath.Join(ls.basePath, filepath.FromSlash(clean))

	if err := os.Remove(physical); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physical).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physical).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physical).Msg("File deleted successfully")
	return nil
}

// DetectContentType prefers the part's declared type and falls back to the extension
func DetectContentType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}
