package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/analisys/biblioteca-circulacion/src/client"
	"github.com/analisys/biblioteca-circulacion/src/models"
)

var catalogoCmd = &cobra.Command{
	Use:   "catalogo",
	Short: "Query or update book availability on the catalog service",
}

var disponibleCmd = &cobra.Command{
	Use:   "disponible <libroId>",
	Short: "Ask the catalog whether a book is available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newCatalogoClient()
		ok, err := c.IsLibroDisponible(cmd.Context(), models.NewLibroId(args[0]))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
		return err
	},
}

var actualizarCmd = &cobra.Command{
	Use:   "actualizar <libroId> <true|false>",
	Short: "Set the availability flag of a book on the catalog",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		disponible, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid availability %q: %w", args[1], err)
		}
		return newCatalogoClient().ActualizarDisponibilidad(cmd.Context(), models.NewLibroId(args[0]), disponible)
	},
}

func newCatalogoClient() *client.CatalogoClient {
	cfg := cfgManager.Get()
	return client.NewCatalogoClient(cfg.Catalogo.BaseURL, cfg.Catalogo.Timeout)
}

func init() {
	catalogoCmd.AddCommand(disponibleCmd, actualizarCmd)
	rootCmd.AddCommand(catalogoCmd)
}
