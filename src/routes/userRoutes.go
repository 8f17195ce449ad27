package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/analisys/biblioteca-circulacion/src/controllers"
	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService, tokens *middleware.TokenManager, limiters ...gin.HandlerFunc) {
	userController := controllers.NewUserController(service)

	// Public routes
	login := router.Group("/login")
	login.Use(limiters...)
	login.POST("", userController.AuthenticateUser)

	// Protected routes
	users := router.Group("/users")
	users.Use(limiters...)
	users.Use(middleware.AuthMiddleware(tokens), middleware.RequireRoles(models.RoleLibrarian))
	{
		users.GET("", userController.GetAllUsers)
		users.POST("", userController.CreateUser)
	}
}
