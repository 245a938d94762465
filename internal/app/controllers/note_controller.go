package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/services"
	"github.com/yigit/edutube/internal/middleware"
)

// NoteController handles note requests
type NoteController struct {
	noteService  services.NoteService
	maxUploadSize int64
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, maxUploadSize int64) *NoteController {
	return &NoteController{noteService: noteService, maxUploadSize: maxUploadSize}
}

// ListNotes godoc
// @Summary List notes
// @Description Active notes, newest first
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NoteResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	notes, err := c.noteService.List(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, notes)
}

// UploadNote godoc
// @Summary Upload a note
// @Description Faculty and admins only. Any file type is accepted.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file true "Note file"
// @Success 201 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /notes [post]
func (c *NoteController) UploadNote(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	// reject before the body is read
	if err := principal.Can(auth.ActionCreate, auth.ResourceNote); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req, file, err := readUpload(ctx, c.maxUploadSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.Create(ctx.Request.Context(), principal, req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, note)
}

// GetNote godoc
// @Summary Get a note
// @Description Returns the note and increments its download counter
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	note, err := c.noteService.Get(ctx.Request.Context(), middleware.PrincipalFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, note)
}
