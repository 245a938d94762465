package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/services"
	"github.com/yigit/edutube/internal/middleware"
)

// VideoController handles video requests
type VideoController struct {
	videoService  services.VideoService
	maxUploadSize int64
}

// NewVideoController creates a new VideoController
func NewVideoController(videoService services.VideoService, maxUploadSize int64) *VideoController {
	return &VideoController{videoService: videoService, maxUploadSize: maxUploadSize}
}

// ListVideos godoc
// @Summary List videos
// @Description Active videos, newest first
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.VideoResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /videos [get]
func (c *VideoController) ListVideos(ctx *gin.Context) {
	videos, err := c.videoService.List(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, videos)
}

// UploadVideo godoc
// @Summary Upload a video
// @Description Faculty and admins only. The file must have a video/* content type.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file true "Video file"
// @Success 201 {object} dto.APIResponse{data=dto.VideoResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /videos [post]
func (c *VideoController) UploadVideo(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	// reject before the body is read
	if err := principal.Can(auth.ActionCreate, auth.ResourceVideo); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req, file, err := readUpload(ctx, c.maxUploadSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	video, err := c.videoService.Create(ctx.Request.Context(), principal, req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, video)
}

// GetVideo godoc
// @Summary Get a video
// @Description Returns the video and increments its view counter
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.APIResponse{data=dto.VideoResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{id} [get]
func (c *VideoController) GetVideo(ctx *gin.Context) {
	video, err := c.videoService.Get(ctx.Request.Context(), middleware.PrincipalFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, video)
}
