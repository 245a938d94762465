package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/events"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})

	user, err := f.svc.AuthService.Register(ctx, &dto.RegisterRequest{
		Email:    "  Ada@School.EDU ",
		Name:     "Ada Lovelace",
		Password: "analytical",
		Role:     models.RoleFaculty,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@school.edu", user.Email)
	assert.Equal(t, models.RoleFaculty, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, []string{events.UserRegistered}, f.events.Types())

	stored, err := f.repos.UserRepository.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "analytical", stored.PasswordHash)

	token, err := f.svc.AuthService.Login(ctx, &dto.LoginRequest{Email: "ADA@school.edu", Password: "analytical"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 3600, token.ExpiresIn)
	assert.Equal(t, user.ID, token.User.ID)
}

func TestAuthService_RegisterDefaultsToStudent(t *testing.T) {
	f := newFixture(t, AuthOptions{})

	user, err := f.svc.AuthService.Register(context.Background(), &dto.RegisterRequest{
		Email: "sam@school.edu", Name: "Sam", Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})

	req := func(email string) *dto.RegisterRequest {
		return &dto.RegisterRequest{Email: email, Name: "Dup", Password: "password1"}
	}
	_, err := f.svc.AuthService.Register(ctx, req("dup@school.edu"))
	require.NoError(t, err)

	for _, email := range []string{"dup@school.edu", "DUP@school.edu", " dup@School.edu"} {
		_, err = f.svc.AuthService.Register(ctx, req(email))
		require.Error(t, err, email)
		assert.Equal(t, apperrors.CategoryValidation, apperrors.Classify(err), email)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t, AuthOptions{})

	tests := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"bad email", dto.RegisterRequest{Email: "nope", Name: "A", Password: "password1"}, "email"},
		{"short password", dto.RegisterRequest{Email: "a@b.io", Name: "A", Password: "short"}, "password"},
		{"blank name", dto.RegisterRequest{Email: "a@b.io", Name: "  ", Password: "password1"}, "name"},
		{"unknown role", dto.RegisterRequest{Email: "a@b.io", Name: "A", Password: "password1", Role: "dean"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.AuthService.Register(context.Background(), &req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, apperrors.DetailsOf(err), tt.field)
		})
	}
}

func TestAuthService_AdminSignup(t *testing.T) {
	req := func() *dto.RegisterRequest {
		return &dto.RegisterRequest{Email: "root@school.edu", Name: "Root", Password: "password1", Role: models.RoleAdmin}
	}

	closed := newFixture(t, AuthOptions{})
	_, err := closed.svc.AuthService.Register(context.Background(), req())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	open := newFixture(t, AuthOptions{AllowAdminSignup: true})
	user, err := open.svc.AuthService.Register(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})

	user, err := f.svc.AuthService.Register(ctx, &dto.RegisterRequest{Email: "s@school.edu", Name: "S", Password: "password1"})
	require.NoError(t, err)

	_, err = f.svc.AuthService.Login(ctx, &dto.LoginRequest{Email: "s@school.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.AuthService.Login(ctx, &dto.LoginRequest{Email: "ghost@school.edu", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.repos.UserRepository.UpdateStatus(ctx, user.ID, models.StatusSuspended)
	require.NoError(t, err)

	_, err = f.svc.AuthService.Login(ctx, &dto.LoginRequest{Email: "s@school.edu", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
	assert.Equal(t, apperrors.CategoryForbidden, apperrors.Classify(err))
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	p := f.principal(t, models.RoleStudent)

	me, err := f.svc.AuthService.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, me.ID)

	_, err = f.svc.AuthService.Me(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = f.svc.AuthService.Me(ctx, &auth.Principal{UserID: "gone", Role: models.RoleStudent})
	assert.Equal(t, apperrors.CategoryUnauthenticated, apperrors.Classify(err))
}
