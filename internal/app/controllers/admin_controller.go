package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/services"
	"github.com/yigit/edutube/internal/middleware"
)

// XLSXContentType is the media type of the user export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminController handles account management requests
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ListUsers godoc
// @Summary List users
// @Description Admin only. Newest first, password hashes omitted.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, users)
}

// UpdateUserStatus godoc
// @Summary Set a user's status
// @Description Admin only. Idempotent. The status comes from the status query parameter or the JSON body.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param status query string false "New status, used instead of the body when set" Enums(active, suspended)
// @Param request body dto.UpdateStatusRequest false "New status"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/status [patch]
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)

	var req dto.UpdateStatusRequest
	if ctx.Query("status") != "" {
		req.Status = models.UserStatus(ctx.Query("status"))
	} else if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.adminService.SetStatus(ctx.Request.Context(), principal, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user)
}

// ExportUsers godoc
// @Summary Export users
// @Description Admin only. The user list as an xlsx workbook.
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users/export [get]
func (c *AdminController) ExportUsers(ctx *gin.Context) {
	data, err := c.adminService.ExportUsers(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, XLSXContentType, data)
}
