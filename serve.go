package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/analisys/biblioteca-circulacion/src/config"
	"github.com/analisys/biblioteca-circulacion/src/db"
	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/routes"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

var (
	serveHost   string
	watchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the circulation HTTP API",
	Long: `Start the circulation HTTP API.

Routes:
  POST /circulacion/prestar        (librarian)
  POST /circulacion/devolver       (librarian)
  GET  /circulacion/prestamos      (librarian or user)
  GET  /circulacion/public/status  (public)
  POST /login
  GET  /swagger/doc.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := *cfgManager.Get()
		cfg := &c
		if serveHost != "" {
			cfg.Server.Host = serveHost
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if watchConfig {
			cfgManager.OnChange(func(c *config.Config) {
				logLevel.Set(c.Log.SlogLevel())
			})
			cfgManager.WatchConfig()
		}

		if cfg.Log.SlogLevel() != slog.LevelDebug {
			gin.SetMode(gin.ReleaseMode)
		}

		conn, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}

		tokens := middleware.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
		deps := routes.RouterDeps{
			Circulacion:    services.NewPrestamoService(conn),
			Users:          services.NewUserService(conn, tokens),
			Tokens:         tokens,
			AllowOrigins:   cfg.CORS.AllowOrigins,
			TrustedProxies: cfg.Server.TrustedProxies,
		}

		if cfg.RateLimit.Enabled {
			store := middleware.NewLimiterStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			store.StartJanitor(ctx, 2*time.Minute)

			var stats middleware.StatsRecorder
			if cfg.RateLimit.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
				defer func() { _ = rdb.Close() }()

				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				err := rdb.Ping(pingCtx).Err()
				cancel()
				if err != nil {
					return err
				}
				stats = middleware.NewRedisStats(rdb, cfg.RateLimit.RedisPrefix, cfg.RateLimit.StatsTTL)
			}
			deps.RateLimit = middleware.RateLimit(store, stats, time.Second)
		}

		router, err := routes.NewRouter(deps)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Server.Host,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		slog.Info("server listening",
			"addr", cfg.Server.Host,
			"catalogo", cfg.Catalogo.BaseURL,
			"ratelimit", cfg.RateLimit.Enabled,
			"redis_stats", cfg.RateLimit.RedisAddr != "")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		slog.Info("server stopped")
		return nil
	},
}

func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Connect(ctx, cfg.DB.DSN, cfg.DB.ConnectAttempts)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to listen on (overrides server.host)")
	serveCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "reload the config file when it changes")
	rootCmd.AddCommand(serveCmd)
}
