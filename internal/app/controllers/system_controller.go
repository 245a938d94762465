package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/pkg/logger"
)

// APIBanner is the message served at the API root
const APIBanner = "EduTube LMS API"

// SystemController serves the banner and health endpoints
type SystemController struct {
	driver string
	ping   func(ctx context.Context) error
}

// NewSystemController creates a new SystemController. ping may be nil.
func NewSystemController(driver string, ping func(ctx context.Context) error) *SystemController {
	return &SystemController{driver: driver, ping: ping}
}

// Root godoc
// @Summary API banner
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router / [get]
func (c *SystemController) Root(ctx *gin.Context) {
	respond(ctx, http.StatusOK, dto.MessageResponse{Message: APIBanner})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	if c.ping != nil {
		if err := c.ping(ctx.Request.Context()); err != nil {
			logger.Warn().Err(err).Msg("Health check failed")
			detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "database unavailable")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
			return
		}
	}
	respond(ctx, http.StatusOK, dto.HealthResponse{Status: "ok", Database: c.driver})
}
