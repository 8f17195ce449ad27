package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/analisys/biblioteca-circulacion/src/controllers"
	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

func SetupCirculacionRoutes(router *gin.Engine, service services.CirculacionService, tokens *middleware.TokenManager, limiters ...gin.HandlerFunc) {
	controller := controllers.NewCirculacionController(service)

	circulacion := router.Group("/circulacion")

	// Public routes
	circulacion.GET("/public/status", controller.GetPublicStatus)

	// Protected routes
	protected := circulacion.Group("")
	protected.Use(limiters...)
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.POST("/prestar", middleware.RequireRoles(models.RoleLibrarian), controller.PrestarLibro)
		protected.POST("/devolver", middleware.RequireRoles(models.RoleLibrarian), controller.DevolverLibro)
		protected.GET("/prestamos", middleware.RequireRoles(models.RoleLibrarian, models.RoleUser), controller.ObtenerTodosPrestamos)
	}
}
