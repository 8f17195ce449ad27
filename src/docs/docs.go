// Package docs holds the OpenAPI document for the circulation API.
// Regenerate with: swag init -g main.go -o src/docs (general info lives on main.go)
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/circulacion/devolver": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Permite a un bibliotecario registrar la devolución de un libro previamente prestado.",
                "tags": ["circulacion"],
                "summary": "Devolver un libro",
                "parameters": [
                    {"type": "string", "description": "ID del préstamo que se va a cerrar", "name": "prestamoId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Devolución registrada exitosamente"},
                    "400": {"description": "Parámetros inválidos", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "403": {"description": "Acceso denegado (solo ROLE_LIBRARIAN)", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/circulacion/prestamos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Devuelve una lista con todos los préstamos activos o históricos registrados en el sistema.",
                "produces": ["application/json"],
                "tags": ["circulacion"],
                "summary": "Obtener todos los préstamos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Prestamo"}}},
                    "403": {"description": "Acceso denegado (requiere ROLE_USER o ROLE_LIBRARIAN)", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/circulacion/prestar": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Permite a un bibliotecario registrar el préstamo de un libro a un usuario.",
                "tags": ["circulacion"],
                "summary": "Prestar un libro",
                "parameters": [
                    {"type": "string", "description": "ID del usuario que solicita el préstamo", "name": "usuarioId", "in": "query", "required": true},
                    {"type": "string", "description": "ID del libro que se va a prestar", "name": "libroId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Préstamo registrado exitosamente"},
                    "400": {"description": "Parámetros inválidos", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "403": {"description": "Acceso denegado (solo ROLE_LIBRARIAN)", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/circulacion/public/status": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["circulacion"],
                "summary": "Estado público del servicio de circulación",
                "responses": {
                    "200": {"description": "El servicio responde correctamente", "schema": {"type": "string"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Listar usuarios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RegisterResponse"}}},
                    "403": {"description": "Acceso denegado (solo ROLE_LIBRARIAN)", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Crear usuario",
                "parameters": [
                    {"description": "Usuario y roles", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "403": {"description": "Acceso denegado (solo ROLE_LIBRARIAN)", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"description": "Credenciales", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "models.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "models.RegisterRequest": {
            "type": "object",
            "required": ["password", "roles", "username"],
            "properties": {
                "password": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "username": {"type": "string"}
            }
        },
        "models.RegisterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "username": {"type": "string"}
            }
        },
        "models.Prestamo": {
            "type": "object",
            "properties": {
                "estado": {"type": "string"},
                "fechaDevolucion": {"type": "string"},
                "fechaPrestamo": {"type": "string"},
                "id": {"type": "string"},
                "libroId": {"type": "string"},
                "usuarioId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Circulación API",
	Description:      "Préstamos y devoluciones de libros de la biblioteca.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
