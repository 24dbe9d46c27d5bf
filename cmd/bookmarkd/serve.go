package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tmoore/bookmarkd/internal/api"
	"github.com/tmoore/bookmarkd/internal/auth"
	"github.com/tmoore/bookmarkd/internal/config"
	"github.com/tmoore/bookmarkd/internal/db"
	"github.com/tmoore/bookmarkd/internal/logger"
	"github.com/tmoore/bookmarkd/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, cleanup := logger.New(cfg.Log.Level, cfg.IsProduction())
			defer cleanup()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				log.Fatal("open database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				log.Fatal("run migrations", zap.Error(err))
			}
			log.Info("database ready", zap.String("driver", cfg.DB.Driver))

			users := store.NewUserStore(database)
			bookmarks := store.NewBookmarkStore(database)

			tokens := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.Lifetime)
			credentials := auth.NewService(users, tokens)
			gate := auth.NewMiddleware(tokens)

			router := api.NewRouter(api.Deps{
				Log:          log,
				Credentials:  credentials,
				Gate:         gate,
				Bookmarks:    bookmarks,
				ExposeErrors: !cfg.IsProduction(),
				RateLimit:    cfg.RateLimit,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
				MaxHeaderBytes:    1 << 20,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
