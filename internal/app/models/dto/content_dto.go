package dto

import (
	"time"

	"github.com/yigit/edutube/internal/app/models"
)

// UploadRequest holds the text fields of a video or note upload form
type UploadRequest struct {
	Title       string `form:"title" validate:"notblank,max=200" example:"Lecture 1: Limits"`
	Description string `form:"description" validate:"max=2000" example:"Introductory lecture"`
}

// VideoResponse is the public view of a video
type VideoResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	FileURL          string    `json:"fileUrl" example:"/uploads/videos/3f1c.mp4"`
	FileSize         int64     `json:"fileSize"`
	ContentType      string    `json:"contentType" example:"video/mp4"`
	UploaderID       string    `json:"uploaderId"`
	UploaderName     string    `json:"uploaderName"`
	Views            int64     `json:"views"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// NewVideoResponse converts a video model
func NewVideoResponse(v *models.Video) *VideoResponse {
	return &VideoResponse{
		ID:               v.ID,
		Title:            v.Title,
		Description:      v.Description,
		Filename:         v.Filename,
		OriginalFilename: v.OriginalFilename,
		FileURL:          v.FileURL,
		FileSize:         v.FileSize,
		ContentType:      v.ContentType,
		UploaderID:       v.UploaderID,
		UploaderName:     v.UploaderName,
		Views:            v.Views,
		UploadedAt:       v.UploadedAt,
	}
}

// NewVideoResponses converts a slice of video models
func NewVideoResponses(videos []*models.Video) []*VideoResponse {
	out := make([]*VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, NewVideoResponse(v))
	}
	return out
}

// NoteResponse is the public view of a note
type NoteResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	FileURL          string    `json:"fileUrl" example:"/uploads/notes/9a2e.pdf"`
	FileSize         int64     `json:"fileSize"`
	ContentType      string    `json:"contentType" example:"application/pdf"`
	UploaderID       string    `json:"uploaderId"`
	UploaderName     string    `json:"uploaderName"`
	Downloads        int64     `json:"downloads"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// NewNoteResponse converts a note model
func NewNoteResponse(n *models.Note) *NoteResponse {
	return &NoteResponse{
		ID:               n.ID,
		Title:            n.Title,
		Description:      n.Description,
		Filename:         n.Filename,
		OriginalFilename: n.OriginalFilename,
		FileURL:          n.FileURL,
		FileSize:         n.FileSize,
		ContentType:      n.ContentType,
		UploaderID:       n.UploaderID,
		UploaderName:     n.UploaderName,
		Downloads:        n.Downloads,
		UploadedAt:       n.UploadedAt,
	}
}

// NewNoteResponses converts a slice of note models
func NewNoteResponses(notes []*models.Note) []*NoteResponse {
	out := make([]*NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
