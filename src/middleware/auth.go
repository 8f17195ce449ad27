package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID   = "userId"
	ContextUsername = "username"
	ContextRoles    = "roles"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity and roles inside the JWT.
type Claims struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	// Keycloak places realm roles here instead of in "roles".
	RealmAccess struct {
		Roles []string `json:"roles,omitempty"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// AllRoles merges the flat and realm role lists.
func (c *Claims) AllRoles() []string {
	roles := make([]string, 0, len(c.Roles)+len(c.RealmAccess.Roles))
	roles = append(roles, c.Roles...)
	return append(roles, c.RealmAccess.Roles...)
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs an HS256 token for the given user.
func (m *TokenManager) Issue(id int, username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:       id,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of a token.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func AuthMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx.Set(ContextUserID, claims.ID)
		ctx.Set(ContextUsername, claims.Username)
		ctx.Set(ContextRoles, claims.AllRoles())
		ctx.Next()
	}
}

// NormalizeRole upper-cases a role and strips the optional ROLE_ prefix.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// HasAnyRole reports whether the caller holds at least one required role.
// An empty required set means the route is public.
func HasAnyRole(required, caller []string) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(caller))
	for _, r := range caller {
		held[NormalizeRole(r)] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[NormalizeRole(r)]; ok {
			return true
		}
	}
	return false
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var caller []string
		if v, ok := ctx.Get(ContextRoles); ok {
			caller, _ = v.([]string)
		}
		if !HasAnyRole(roles, caller) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
			return
		}
		ctx.Next()
	}
}
