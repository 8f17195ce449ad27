package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

//	@title						Circulación API
//	@version					1.0
//	@description				Préstamos y devoluciones de libros de la biblioteca.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
