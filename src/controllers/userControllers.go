package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// GetAllUsers handles GET requests to retrieve all users
//
//	@Summary	Listar usuarios
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}		models.RegisterResponse
//	@Failure	403	{object}	ErrorResponse	"Acceso denegado (solo ROLE_LIBRARIAN)"
//	@Security	BearerAuth
//	@Router		/users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]models.RegisterResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, models.RegisterResponse{ID: u.Id, Username: u.Username, Roles: u.RoleList()})
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateUser handles POST requests to register a user with roles
//
//	@Summary	Crear usuario
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		models.RegisterRequest	true	"Usuario y roles"
//	@Success	201		{object}	models.RegisterResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse	"Acceso denegado (solo ROLE_LIBRARIAN)"
//	@Security	BearerAuth
//	@Router		/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.service.CreateUser(ctx.Request.Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, models.RegisterResponse{ID: user.Id, Username: user.Username, Roles: user.RoleList()})
}

// AuthenticateUser handles POST /login and returns a bearer token
//
//	@Summary	Iniciar sesión
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		models.LoginRequest	true	"Credenciales"
//	@Success	200			{object}	models.LoginResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/login [post]
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := c.service.AuthenticateUser(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, models.LoginResponse{Token: token})
}
