package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/validation"
)

// UsersSheet is the worksheet name of the user export
const UsersSheet = "Users"

var exportHeader = []interface{}{"ID", "Email", "Name", "Role", "Status", "Created At", "Updated At"}

// AdminService defines account management operations. Every method
// requires the manage permission on users.
type AdminService interface {
	ListUsers(ctx context.Context, principal *auth.Principal) ([]*dto.UserResponse, error)
	// SetStatus is idempotent: repeating the current status succeeds
	SetStatus(ctx context.Context, principal *auth.Principal, userID string, req *dto.UpdateStatusRequest) (*dto.UserResponse, error)
	// ExportUsers renders the user list as an xlsx workbook
	ExportUsers(ctx context.Context, principal *auth.Principal) ([]byte, error)
}

type adminServiceImpl struct {
	userRepo  repositories.UserRepository
	sessions  *auth.SessionGuard
	publisher *events.Publisher
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.UserRepository,
	sessions *auth.SessionGuard,
	publisher *events.Publisher,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		userRepo:  userRepo,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, principal *auth.Principal) ([]*dto.UserResponse, error) {
	if err := principal.Can(auth.ActionManage, auth.ResourceUser); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *adminServiceImpl) SetStatus(ctx context.Context, principal *auth.Principal, userID string, req *dto.UpdateStatusRequest) (*dto.UserResponse, error) {
	if err := principal.Can(auth.ActionManage, auth.ResourceUser); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// A resolve racing the write can re-cache the old status; drop the entry
	// on both sides of it.
	s.invalidateSession(ctx, userID)
	user, err := s.userRepo.UpdateStatus(ctx, userID, req.Status)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrUserNotFound, "user not found")
		}
		return nil, fmt.Errorf("error updating user status: %w", err)
	}

	s.invalidateSession(ctx, user.ID)

	s.logger.Info().
		Str("userID", user.ID).
		Str("status", string(user.Status)).
		Str("adminID", principal.UserID).
		Msg("User status changed")
	s.publisher.Publish(ctx, events.UserStatusChanged, map[string]interface{}{
		"userId":    user.ID,
		"status":    user.Status,
		"changedBy": principal.UserID,
	})

	return dto.NewUserResponse(user), nil
}

func (s *adminServiceImpl) invalidateSession(ctx context.Context, userID string) {
	if s.sessions != nil {
		s.sessions.Invalidate(ctx, userID)
	}
}

func (s *adminServiceImpl) ExportUsers(ctx context.Context, principal *auth.Principal) ([]byte, error) {
	if err := principal.Can(auth.ActionManage, auth.ResourceUser); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	data, err := renderUsersWorkbook(users)
	if err != nil {
		return nil, fmt.Errorf("error rendering user export: %w", err)
	}
	s.logger.Info().Int("rows", len(users)).Str("adminID", principal.UserID).Msg("User export generated")
	return data, nil
}

func renderUsersWorkbook(users []*models.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", UsersSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(UsersSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, u := range users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			u.ID,
			u.Email,
			u.Name,
			string(u.Role),
			string(u.Status),
			u.CreatedAt.UTC().Format(time.RFC3339),
			u.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(UsersSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(UsersSheet, "A", "A", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(UsersSheet, "B", "C", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
