package models

import "time"

// Video is an uploaded lecture recording
type Video struct {
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
	Views            int64     `json:"views" db:"views"`
	UploadedAt       time.Time `json:"uploadedAt" db:"uploaded_at"`
	IsActive         bool      `json:"isActive" db:"is_active"`
}
