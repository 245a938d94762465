package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/edutube/internal/app/models"
	appRepos "github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/validation"
)

// AdminAccount describes the default administrator
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

// CreateDefaultAdmin creates the administrator account when no account with
// that email exists yet. An empty password disables seeding.
func CreateDefaultAdmin(ctx context.Context, users appRepos.UserRepository, admin AdminAccount, lgr zerolog.Logger) error {
	if admin.Password == "" {
		lgr.Warn().Msg("No default admin password configured, skipping admin seed")
		return nil
	}

	email := validation.NormalizeEmail(admin.Email)
	if email == "" {
		return errors.New("default admin email is empty")
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking default admin: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Default admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("error hashing default admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "System Administrator"
	}

	user := &appModels.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         appModels.RoleAdmin,
		Status:       appModels.StatusActive,
	}
	if err := users.Create(ctx, user); err != nil {
		// lost a race with another instance
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("error creating default admin: %w", err)
	}

	lgr.Info().Str("email", email).Str("userID", user.ID).Msg("Default admin account created")
	return nil
}
