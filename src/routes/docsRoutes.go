package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	_ "github.com/analisys/biblioteca-circulacion/src/docs"
)

func SetupDocsRoutes(router *gin.Engine) {
	router.GET("/swagger/doc.json", func(ctx *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})
}
