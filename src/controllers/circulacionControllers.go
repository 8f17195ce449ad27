package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

const StatusMessage = "El servicio de circulación está funcionando correctamente"

type CirculacionController struct {
	service services.CirculacionService
}

func NewCirculacionController(service services.CirculacionService) *CirculacionController {
	return &CirculacionController{service: service}
}

// PrestarLibro registers a loan of a book to a user.
//
//	@Summary		Prestar un libro
//	@Description	Permite a un bibliotecario registrar el préstamo de un libro a un usuario.
//	@Tags			circulacion
//	@Param			usuarioId	query	string	true	"ID del usuario que solicita el préstamo"
//	@Param			libroId		query	string	true	"ID del libro que se va a prestar"
//	@Success		200	"Préstamo registrado exitosamente"
//	@Failure		400	{object}	ErrorResponse	"Parámetros inválidos"
//	@Failure		403	{object}	ErrorResponse	"Acceso denegado (solo ROLE_LIBRARIAN)"
//	@Security		BearerAuth
//	@Router			/circulacion/prestar [post]
func (c *CirculacionController) PrestarLibro(ctx *gin.Context) {
	var params struct {
		UsuarioId string `form:"usuarioId" binding:"required"`
		LibroId   string `form:"libroId" binding:"required"`
	}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.service.PrestarLibro(ctx.Request.Context(), models.NewUsuarioId(params.UsuarioId), models.NewLibroId(params.LibroId))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusOK)
}

// DevolverLibro closes a loan.
//
//	@Summary		Devolver un libro
//	@Description	Permite a un bibliotecario registrar la devolución de un libro previamente prestado.
//	@Tags			circulacion
//	@Param			prestamoId	query	string	true	"ID del préstamo que se va a cerrar"
//	@Success		200	"Devolución registrada exitosamente"
//	@Failure		400	{object}	ErrorResponse	"Parámetros inválidos"
//	@Failure		403	{object}	ErrorResponse	"Acceso denegado (solo ROLE_LIBRARIAN)"
//	@Security		BearerAuth
//	@Router			/circulacion/devolver [post]
func (c *CirculacionController) DevolverLibro(ctx *gin.Context) {
	var params struct {
		PrestamoId string `form:"prestamoId" binding:"required"`
	}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.service.DevolverLibro(ctx.Request.Context(), models.NewPrestamoId(params.PrestamoId)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusOK)
}

// ObtenerTodosPrestamos lists every loan.
//
//	@Summary		Obtener todos los préstamos
//	@Description	Devuelve una lista con todos los préstamos activos o históricos registrados en el sistema.
//	@Tags			circulacion
//	@Produce		json
//	@Success		200	{array}		models.Prestamo
//	@Failure		403	{object}	ErrorResponse	"Acceso denegado (requiere ROLE_USER o ROLE_LIBRARIAN)"
//	@Security		BearerAuth
//	@Router			/circulacion/prestamos [get]
func (c *CirculacionController) ObtenerTodosPrestamos(ctx *gin.Context) {
	prestamos, err := c.service.ObtenerTodosPrestamos(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if prestamos == nil {
		prestamos = []models.Prestamo{}
	}
	ctx.JSON(http.StatusOK, prestamos)
}

// GetPublicStatus is the unauthenticated liveness probe.
//
//	@Summary		Estado público del servicio de circulación
//	@Tags			circulacion
//	@Produce		plain
//	@Success		200	{string}	string	"El servicio responde correctamente"
//	@Router			/circulacion/public/status [get]
func (c *CirculacionController) GetPublicStatus(ctx *gin.Context) {
	ctx.String(http.StatusOK, StatusMessage)
}

type ErrorResponse struct {
	Error string `json:"error"`
}
