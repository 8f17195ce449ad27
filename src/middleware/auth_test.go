package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		caller   []string
		want     bool
	}{
		{"public route", nil, nil, true},
		{"exact match", []string{"LIBRARIAN"}, []string{"LIBRARIAN"}, true},
		{"spring prefix", []string{"LIBRARIAN"}, []string{"ROLE_LIBRARIAN"}, true},
		{"lower case", []string{"ROLE_USER"}, []string{"user"}, true},
		{"any of two", []string{"LIBRARIAN", "USER"}, []string{"ROLE_USER"}, true},
		{"missing", []string{"LIBRARIAN"}, []string{"ROLE_USER"}, false},
		{"no caller roles", []string{"USER"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAnyRole(tt.required, tt.caller))
		})
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(7, "ana", []string{"LIBRARIAN"})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.ID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, []string{"LIBRARIAN"}, claims.AllRoles())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Issue(1, "ana", nil)
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RealmAccessRoles(t *testing.T) {
	claims := jwt.MapClaims{
		"preferred_username": "kc-user",
		"realm_access":       map[string]any{"roles": []string{"ROLE_LIBRARIAN"}},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	parsed, err := NewTokenManager("secret", time.Hour).Parse(token)
	require.NoError(t, err)
	assert.True(t, HasAnyRole([]string{"LIBRARIAN"}, parsed.AllRoles()))
}

func newGuardedRouter(m *TokenManager, roles ...string) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.GET("/guarded", AuthMiddleware(m), RequireRoles(roles...), func(ctx *gin.Context) {
		calls++
		ctx.Status(http.StatusOK)
	})
	return r, &calls
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	expired := NewTokenManager("secret", time.Nanosecond)
	old, err := expired.Issue(1, "ana", []string{"LIBRARIAN"})
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "Authorization header is required"},
		{"not bearer", "Basic abc", "Invalid authorization format"},
		{"garbage token", "Bearer abc", "Invalid token"},
		{"expired token", "Bearer " + old, "Token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, calls := newGuardedRouter(m, "LIBRARIAN")
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Zero(t, *calls)
		})
	}
}

func TestRequireRoles_ForbiddenBeforeHandler(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	r, calls := newGuardedRouter(m, "LIBRARIAN")

	token, err := m.Issue(2, "luis", []string{"ROLE_USER"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, *calls)
}

func TestRequireRoles_Allows(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	r, calls := newGuardedRouter(m, "LIBRARIAN", "USER")

	token, err := m.Issue(2, "luis", []string{"ROLE_USER"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestParse_ExpiredWrapsJWTError(t *testing.T) {
	m := NewTokenManager("secret", time.Nanosecond)
	token, err := m.Issue(1, "ana", nil)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = m.Parse(token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
