package dto

import "github.com/yigit/edutube/internal/app/models"

// RegisterRequest represents a user registration request. Role defaults to
// student when omitted.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email" example:"ada@school.edu"`
	Name     string      `json:"name" validate:"notblank,max=100" example:"Ada Lovelace"`
	Password string      `json:"password" validate:"required,min=8" example:"s3cretpass"`
	Role     models.Role `json:"role" validate:"omitempty,role" example:"faculty" enums:"student,faculty,admin"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@school.edu"`
	Password string `json:"password" validate:"required" example:"s3cretpass"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type" example:"bearer"`
	ExpiresIn   int           `json:"expires_in" example:"86400"`
	User        *UserResponse `json:"user"`
}
