package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/app/repositories/memory"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/cache"
)

func createUser(t *testing.T, repos *repositories.Repositories, role models.Role, status models.UserStatus) *models.User {
	t.Helper()
	u := &models.User{Email: string(role) + "@x.io", Name: "User " + string(role), Role: role, Status: status}
	require.NoError(t, repos.UserRepository.Create(context.Background(), u))
	return u
}

func claimsFor(u *models.User) *pkgAuth.Claims {
	c := &pkgAuth.Claims{UserID: u.ID, Role: string(u.Role)}
	c.Subject = u.ID
	return c
}

func TestSessionGuard_Resolve(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	guard := NewSessionGuard(repos.UserRepository, nil, time.Minute, zerolog.Nop())

	active := createUser(t, repos, models.RoleFaculty, models.StatusActive)
	suspended := createUser(t, repos, models.RoleStudent, models.StatusSuspended)

	p, err := guard.Resolve(ctx, claimsFor(active))
	require.NoError(t, err)
	assert.Equal(t, &Principal{UserID: active.ID, Name: active.Name, Role: models.RoleFaculty}, p)

	_, err = guard.Resolve(ctx, claimsFor(suspended))
	assert.True(t, errors.Is(err, apperrors.ErrAccountSuspended))
	assert.Equal(t, apperrors.CategoryForbidden, apperrors.Classify(err))

	_, err = guard.Resolve(ctx, &pkgAuth.Claims{UserID: "ghost"})
	assert.Equal(t, apperrors.CategoryUnauthenticated, apperrors.Classify(err))

	_, err = guard.Resolve(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestSessionGuard_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repos := memory.NewRepositories()
	guard := NewSessionGuard(repos.UserRepository, cache.NewCacheHelper(client, SessionCachePrefix), time.Hour, zerolog.Nop())

	u := createUser(t, repos, models.RoleStudent, models.StatusActive)

	_, err := guard.Resolve(ctx, claimsFor(u))
	require.NoError(t, err)
	assert.True(t, mr.Exists(SessionCachePrefix+u.ID))

	_, err = repos.UserRepository.UpdateStatus(ctx, u.ID, models.StatusSuspended)
	require.NoError(t, err)

	// stale cache still says active until invalidated
	_, err = guard.Resolve(ctx, claimsFor(u))
	require.NoError(t, err)

	guard.Invalidate(ctx, u.ID)
	assert.False(t, mr.Exists(SessionCachePrefix+u.ID))

	_, err = guard.Resolve(ctx, claimsFor(u))
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
}

func TestSessionGuard_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	repos := memory.NewRepositories()
	guard := NewSessionGuard(repos.UserRepository, cache.NewCacheHelper(client, SessionCachePrefix), time.Hour, zerolog.Nop())
	u := createUser(t, repos, models.RoleStudent, models.StatusActive)

	mr.Close()

	p, err := guard.Resolve(ctx, claimsFor(u))
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
}
