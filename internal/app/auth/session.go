package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/cache"
)

// SessionCachePrefix namespaces cached session entries in redis
const SessionCachePrefix = "session:user:"

// sessionEntry is the cached slice of a user record the guard needs
type sessionEntry struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Role   models.Role       `json:"role"`
	Status models.UserStatus `json:"status"`
}

// SessionGuard turns validated token claims into a live Principal.
// It re-reads the account on every request (through the cache) so that a
// suspension takes effect on tokens that were issued before it.
type SessionGuard struct {
	users  repositories.UserRepository
	cache  *cache.CacheHelper
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionGuard creates a guard. A nil cache or one without a redis
// client makes every lookup go straight to the repository.
func NewSessionGuard(users repositories.UserRepository, c *cache.CacheHelper, ttl time.Duration, lgr zerolog.Logger) *SessionGuard {
	if c == nil {
		c = cache.NewCacheHelper(nil, SessionCachePrefix)
	}
	return &SessionGuard{users: users, cache: c, ttl: ttl, logger: lgr}
}

// Resolve loads the account behind claims. A missing account is
// unauthenticated, a suspended one is forbidden.
func (g *SessionGuard) Resolve(ctx context.Context, claims *pkgAuth.Claims) (*Principal, error) {
	if claims == nil || claims.UserID == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	entry, err := cache.CacheOrExecute(ctx, g.cache, claims.UserID, g.ttl, func() (sessionEntry, error) {
		user, err := g.users.GetByID(ctx, claims.UserID)
		if err != nil {
			return sessionEntry{}, err
		}
		return sessionEntry{ID: user.ID, Name: user.Name, Role: user.Role, Status: user.Status}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "user no longer exists")
		}
		return nil, err
	}

	if entry.Status != models.StatusActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountSuspended, "account is suspended")
	}
	if !entry.Role.Valid() {
		g.logger.Warn().Str("userID", entry.ID).Str("role", string(entry.Role)).Msg("Account carries an unknown role")
		return nil, apperrors.ErrPermissionDenied
	}

	return &Principal{UserID: entry.ID, Name: entry.Name, Role: entry.Role}, nil
}

// Invalidate drops the cached entry for userID
func (g *SessionGuard) Invalidate(ctx context.Context, userID string) {
	if err := g.cache.Delete(ctx, userID); err != nil {
		g.logger.Warn().Err(err).Str("userID", userID).Msg("Failed to invalidate session cache")
	}
}
