package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/cache"
	"github.com/yigit/edutube/internal/pkg/events"
)

// hookedUsers runs beforeUpdate ahead of every status write
type hookedUsers struct {
	repositories.UserRepository
	beforeUpdate func()
}

func (h *hookedUsers) UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	h.beforeUpdate()
	return h.UserRepository.UpdateStatus(ctx, id, status)
}

func TestAdminService_SetStatusDropsCachedSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	target := f.principal(t, models.RoleStudent)
	admin := f.principal(t, models.RoleAdmin)
	claims := &pkgAuth.Claims{UserID: target.UserID, Role: string(target.Role)}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	guard := auth.NewSessionGuard(f.repos.UserRepository, cache.NewCacheHelper(client, auth.SessionCachePrefix), time.Hour, zerolog.Nop())
	key := auth.SessionCachePrefix + target.UserID

	var cachedAtWrite bool
	users := &hookedUsers{UserRepository: f.repos.UserRepository}
	users.beforeUpdate = func() {
		cachedAtWrite = mr.Exists(key)
		// a request resolving concurrently with the write caches the old status
		_, err := guard.Resolve(ctx, claims)
		require.NoError(t, err)
	}
	svc := NewAdminService(users, guard, events.NewPublisherWith(&recordingPublisher{}, "edutube.events", zerolog.Nop()), zerolog.Nop())

	_, err := guard.Resolve(ctx, claims)
	require.NoError(t, err)
	require.True(t, mr.Exists(key))

	resp, err := svc.SetStatus(ctx, admin, target.UserID, &dto.UpdateStatusRequest{Status: models.StatusSuspended})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, resp.Status)

	assert.False(t, cachedAtWrite, "cached entry should be dropped before the write")
	assert.False(t, mr.Exists(key), "entry cached during the write should be dropped after it")

	_, err = guard.Resolve(ctx, claims)
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	target := f.principal(t, models.RoleStudent)

	for _, role := range []models.Role{models.RoleStudent, models.RoleFaculty} {
		p := f.principal(t, role)

		_, err := f.svc.AdminService.ListUsers(ctx, p)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, role)

		_, err = f.svc.AdminService.SetStatus(ctx, p, target.UserID, &dto.UpdateStatusRequest{Status: models.StatusSuspended})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, role)

		_, err = f.svc.AdminService.ExportUsers(ctx, p)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, role)
	}

	u, err := f.repos.UserRepository.GetByID(ctx, target.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, u.Status)
}

func TestAdminService_ListUsersNewestFirst(t *testing.T) {
	f := newFixture(t, AuthOptions{})
	first := f.principal(t, models.RoleStudent)
	second := f.principal(t, models.RoleFaculty)
	admin := f.principal(t, models.RoleAdmin)

	users, err := f.svc.AdminService.ListUsers(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{admin.UserID, second.UserID, first.UserID}, []string{users[0].ID, users[1].ID, users[2].ID})
}

func TestAdminService_SetStatusIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	admin := f.principal(t, models.RoleAdmin)
	target := f.principal(t, models.RoleFaculty)

	for i := 0; i < 2; i++ {
		got, err := f.svc.AdminService.SetStatus(ctx, admin, target.UserID, &dto.UpdateStatusRequest{Status: models.StatusSuspended})
		require.NoError(t, err)
		assert.Equal(t, models.StatusSuspended, got.Status)
		assert.False(t, got.IsActive)
	}
	assert.Equal(t, []string{events.UserStatusChanged, events.UserStatusChanged}, f.events.Types())

	got, err := f.svc.AdminService.SetStatus(ctx, admin, target.UserID, &dto.UpdateStatusRequest{Status: models.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestAdminService_SetStatusErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	admin := f.principal(t, models.RoleAdmin)
	target := f.principal(t, models.RoleStudent)

	_, err := f.svc.AdminService.SetStatus(ctx, admin, target.UserID, &dto.UpdateStatusRequest{Status: "banned"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.AdminService.SetStatus(ctx, admin, target.UserID, &dto.UpdateStatusRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.AdminService.SetStatus(ctx, admin, "missing", &dto.UpdateStatusRequest{Status: models.StatusSuspended})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.Classify(err))
}

func TestAdminService_SuspensionReachesSessionGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AuthOptions{})
	admin := f.principal(t, models.RoleAdmin)

	user, err := f.svc.AuthService.Register(ctx, &dto.RegisterRequest{Email: "t@school.edu", Name: "T", Password: "password1"})
	require.NoError(t, err)

	_, err = f.svc.AdminService.SetStatus(ctx, admin, user.ID, &dto.UpdateStatusRequest{Status: models.StatusSuspended})
	require.NoError(t, err)

	claims := claimsFor(user.ID)
	_, err = f.sessions.Resolve(ctx, claims)
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
}

func TestAdminService_ExportUsers(t *testing.T) {
	f := newFixture(t, AuthOptions{})
	admin := f.principal(t, models.RoleAdmin)
	student := f.principal(t, models.RoleStudent)

	data, err := f.svc.AdminService.ExportUsers(context.Background(), admin)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })

	rows, err := book.GetRows(UsersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Email", "Name", "Role", "Status", "Created At", "Updated At"}, rows[0])
	assert.Equal(t, student.UserID, rows[1][0])
	assert.Equal(t, "student", rows[1][3])
	assert.Equal(t, "active", rows[1][4])
	assert.Equal(t, admin.UserID, rows[2][0])
}
