package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/seed"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial librarian account (seed.username / seed.password)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := cfgManager.Get()
		if err := cfg.Validate(); err != nil {
			return err
		}

		conn, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		users := services.NewUserService(conn, middleware.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL))
		return seed.Seed(ctx, users, cfg.Seed.Username, cfg.Seed.Password)
	},
}

var (
	tokenUser  string
	tokenID    int
	tokenRoles string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with jwt.secret",
	Example: `  circulacion token --user ana --roles LIBRARIAN
  circulacion token --user luis --roles USER`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgManager.Get()
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required (CIRCULACION_JWT_SECRET)")
		}

		roles := models.UserModel{Roles: services.JoinRoles(strings.Split(tokenRoles, ","))}.RoleList()
		token, err := middleware.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL).Issue(tokenID, tokenUser, roles)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every loan to an xlsx spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := cfgManager.Get()
		if cfg.DB.DSN == "" {
			return errors.New("db.dsn is required (CIRCULACION_DB_DSN)")
		}

		conn, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}

		n, err := writeExport(ctx, services.NewExportService(services.NewPrestamoService(conn)), exportOut)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d prestamos exportados a %s\n", n, exportOut)
		return err
	},
}

// writeExport creates path and reports the Close error, which is where a
// short write of the workbook surfaces.
func writeExport(ctx context.Context, svc *services.ExportService, path string) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return svc.ExportPrestamos(ctx, f)
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "username claim")
	tokenCmd.Flags().IntVar(&tokenID, "id", 0, "user id claim")
	tokenCmd.Flags().StringVar(&tokenRoles, "roles", "USER", "comma-separated roles")
	_ = tokenCmd.MarkFlagRequired("user")

	exportCmd.Flags().StringVarP(&exportOut, "out", "f", "prestamos.xlsx", "output file")

	rootCmd.AddCommand(seedCmd, tokenCmd, exportCmd)
}
