package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

type RouterDeps struct {
	Circulacion  services.CirculacionService
	Users        *services.UserService
	Tokens       *middleware.TokenManager
	AllowOrigins []string
	// TrustedProxies may set X-Forwarded-For; nil trusts none.
	TrustedProxies []string
	// RateLimit guards every route except the status probe and docs. Skipped when nil.
	RateLimit gin.HandlerFunc
}

func (d RouterDeps) limiters() []gin.HandlerFunc {
	if d.RateLimit == nil {
		return nil
	}
	return []gin.HandlerFunc{d.RateLimit}
}

// NewRouter builds the gin engine with every route group registered.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SetupCORS(deps.AllowOrigins))

	SetupCirculacionRoutes(router, deps.Circulacion, deps.Tokens, deps.limiters()...)
	if deps.Users != nil {
		SetupUserRoutes(router, deps.Users, deps.Tokens, deps.limiters()...)
	}
	SetupDocsRoutes(router)

	return router, nil
}
