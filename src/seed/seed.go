package seed

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

// Seed creates the initial librarian account when it does not exist yet.
func Seed(ctx context.Context, users *services.UserService, username, password string) error {
	if username == "" || password == "" {
		return errors.New("seed.username and seed.password are required")
	}

	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		slog.Info("user already exists", "username", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := users.CreateUser(ctx, username, password, []string{models.RoleLibrarian}); err != nil {
		return err
	}
	slog.Info("librarian user created", "username", username)
	return nil
}
