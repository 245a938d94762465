package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
)

// PrincipalKey is the gin context key the authenticated principal is stored under
const PrincipalKey = "principal"

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *pkgAuth.JWTService
	sessions   *auth.SessionGuard
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *pkgAuth.JWTService, sessions *auth.SessionGuard) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// JWTAuth requires a valid bearer token belonging to an active account.
// Only the Authorization header is consulted.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "Authorization header missing"))
			return
		}

		tokenString, err := pkgAuth.ExtractBearerToken(authHeader)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.Validate(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		principal, err := m.sessions.Resolve(c.Request.Context(), claims)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by JWTAuth, or nil
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
