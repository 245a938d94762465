package filestorage

import (
	"mime/multipart"
)

// StoredFile describes an upload after it has been written to storage
type StoredFile struct {
	Filename         string // generated name on disk
	OriginalFilename string // name supplied by the client
	Path             string // path relative to the storage root, slash separated
	URL              string // public path the file is served at
	Size             int64
	ContentType      string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes the upload under subDir and returns where it landed
	Save(fileHeader *multipart.FileHeader, subDir string) (*StoredFile, error)

	// Delete removes a file by its storage-relative path. Missing files are not an error.
	Delete(path string) error
}
