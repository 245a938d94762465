package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/validation"
)

// AuthService handles registration, login and the current-user lookup
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, principal *auth.Principal) (*dto.UserResponse, error)
}

// AuthOptions tunes registration rules
type AuthOptions struct {
	AllowAdminSignup bool
}

type authServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *pkgAuth.JWTService
	publisher  *events.Publisher
	options    AuthOptions
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *pkgAuth.JWTService,
	publisher *events.Publisher,
	options AuthOptions,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		publisher:  publisher,
		options:    options,
		logger:     logger,
	}
}

// Register creates an account. Duplicate emails are a validation error.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	req.Email = validation.NormalizeEmail(req.Email)
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Role == models.RoleAdmin && !s.options.AllowAdminSignup {
		return nil, apperrors.NewValidationError("admin accounts cannot be self-registered").
			WithDetails(map[string]interface{}{"role": "admin registration is disabled"})
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already registered")
	}

	hash, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Status:       models.StatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already registered")
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	s.publisher.Publish(ctx, events.UserRegistered, map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	})

	return dto.NewUserResponse(user), nil
}

// Login exchanges credentials for an access token. Suspended accounts are
// refused even with the right password.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	req.Email = validation.NormalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !pkgAuth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		s.logger.Warn().Str("userID", user.ID).Msg("Login attempt on suspended account")
		return nil, apperrors.NewCustomError(apperrors.ErrAccountSuspended, "account is suspended")
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   token.ExpiresIn,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authServiceImpl) Me(ctx context.Context, principal *auth.Principal) (*dto.UserResponse, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "user no longer exists")
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return dto.NewUserResponse(user), nil
}
