package models

import "time"

// Note is an uploaded study document
type Note struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Filename         string    `json:"filename" db:"filename"`
	OriginalFilename string    `json:"originalFilename" db:"original_filename"`
	FileURL          string    `json:"fileUrl" db:"file_url"`
	FileSize         int64     `json:"fileSize" db:"file_size"`
	ContentType      string    `json:"contentType" db:"content_type"`
	UploaderID       string    `json:"uploaderId" db:"uploader_id"`
	UploaderName     string    `json:"uploaderName" db:"-"`
	Downloads        int64     `json:"downloads" db:"downloads"`
	UploadedAt       time.Time `json:"uploadedAt" db:"uploaded_at"`
	IsActive         bool      `json:"isActive" db:"is_active"`
}
