package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories/memory"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp
}

func TestHandleAPIError_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"expired", fmt.Errorf("wrap: %w", apperrors.ErrTokenExpired), 401, dto.ErrorCodeExpiredToken, "Token has expired"},
		{"bad token", apperrors.ErrTokenInvalid, 401, dto.ErrorCodeInvalidToken, "Invalid token"},
		{"no session", apperrors.NewCustomError(apperrors.ErrUnauthenticated, "user no longer exists"), 401, dto.ErrorCodeUnauthorized, "user no longer exists"},
		{"forbidden", apperrors.NewForbiddenError("nope"), 403, dto.ErrorCodeForbidden, "nope"},
		{"suspended", apperrors.ErrAccountSuspended, 403, dto.ErrorCodeForbidden, "Permission denied"},
		{"not found", apperrors.NewNotFoundError(apperrors.ErrVideoNotFound, "video not found"), 404, dto.ErrorCodeResourceNotFound, "video not found"},
		{"validation", apperrors.NewValidationError("title is required"), 400, dto.ErrorCodeValidationFailed, "title is required"},
		{"duplicate", apperrors.ErrEmailAlreadyExists, 400, dto.ErrorCodeValidationFailed, "Validation failed"},
		{"custom code", apperrors.NewValidationError("bad json").WithCode("INVALID_REQUEST"), 400, dto.ErrorCodeInvalidRequest, "bad json"},
		{"internal", errors.New("connection reset by peer"), 500, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleAPIError_Details(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	HandleAPIError(c, apperrors.NewValidationError("email is required").
		WithDetails(map[string]interface{}{"email": "email is required"}))

	resp := decodeError(t, w)
	assert.Equal(t, map[string]interface{}{"email": "email is required"}, resp.Error.Details)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *pkgAuth.JWTService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	jwtSvc := pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	guard := auth.NewSessionGuard(repos.UserRepository, nil, time.Minute, zerolog.Nop())

	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", NewAuthMiddleware(jwtSvc, guard).JWTAuth(), func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(p))
	})
	return r, jwtSvc, store
}

func TestJWTAuth(t *testing.T) {
	r, jwtSvc, store := newAuthRouter(t)
	users := store.Repositories().UserRepository
	ctx := context.Background()

	active := &models.User{Email: "a@x.io", Name: "Active", Role: models.RoleFaculty, Status: models.StatusActive}
	suspended := &models.User{Email: "s@x.io", Name: "Susp", Role: models.RoleStudent, Status: models.StatusSuspended}
	require.NoError(t, users.Create(ctx, active))
	require.NoError(t, users.Create(ctx, suspended))

	issue := func(u *models.User) string {
		tok, err := jwtSvc.Issue(u)
		require.NoError(t, err)
		return tok.AccessToken
	}
	ghost := issue(&models.User{ID: "ghost", Role: models.RoleStudent})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"active", "Bearer " + issue(active), 200},
		{"lowercase scheme", "bearer " + issue(active), 200},
		{"missing header", "", 401},
		{"raw token", issue(active), 401},
		{"garbage", "Bearer not.a.token", 401},
		{"basic scheme", "Basic dXNlcjpwYXNz", 401},
		{"suspended", "Bearer " + issue(suspended), 403},
		{"deleted user", "Bearer " + ghost, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(RequestIDKey))
		})
	}
}

func TestJWTAuth_SetsPrincipal(t *testing.T) {
	r, jwtSvc, store := newAuthRouter(t)
	u := &models.User{Email: "p@x.io", Name: "Pat", Role: models.RoleAdmin, Status: models.StatusActive}
	require.NoError(t, store.Repositories().UserRepository.Create(context.Background(), u))
	tok, err := jwtSvc.Issue(u)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    auth.Principal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, auth.Principal{UserID: u.ID, Name: "Pat", Role: models.RoleAdmin}, body.Data)
}

func TestRequestID_ReusesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDKey))
}
