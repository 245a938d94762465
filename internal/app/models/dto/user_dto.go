package dto

import (
	"time"

	"github.com/yigit/edutube/internal/app/models"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      models.Role       `json:"role" enums:"student,faculty,admin"`
	Status    models.UserStatus `json:"status" enums:"active,suspended"`
	IsActive  bool              `json:"isActive"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewUserResponse converts a user model, dropping the password hash
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses converts a slice of user models
func NewUserResponses(users []*models.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateStatusRequest carries the new status, either as a JSON body or as
// the status query parameter
type UpdateStatusRequest struct {
	Status models.UserStatus `json:"status" form:"status" validate:"required,userstatus" example:"suspended" enums:"active,suspended"`
}
