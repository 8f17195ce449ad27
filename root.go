package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/analisys/biblioteca-circulacion/src/config"
)

var (
	cfgFile    string
	logLevel   = new(slog.LevelVar)
	cfgManager *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "circulacion",
	Short: "Library circulation service: loans, returns and catalog availability",
	Long: `circulacion runs the loan API of the library and offers a few
operational commands around it.

Configuration comes from .env, ./config.yaml (or --config) and
CIRCULACION_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

		m, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgManager = m
		logLevel.Set(m.Get().Log.SlogLevel())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}
