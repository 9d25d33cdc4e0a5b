package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prudhvinik1/boxfleet/internal/api"
	"github.com/prudhvinik1/boxfleet/internal/config"
	"github.com/prudhvinik1/boxfleet/internal/database"
	"github.com/prudhvinik1/boxfleet/internal/repositories"
	"github.com/prudhvinik1/boxfleet/internal/services"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")

	return cmd
}

func runServe(cmd *cobra.Command, rootOpts *RootOptions, migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := rootOpts.logger(cmd, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := database.NewPoolBeginner(pool)
	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	boxService := services.NewBoxService(
		repositories.NewPostgresBoxRepository(db),
		repositories.NewRedisBoxCache(redisClient, cfg.CacheTTL),
		log,
	)
	authService := services.NewAuthService(repositories.NewPostgresUserRepository(pool), cfg.JWTSecret, cfg.JWTExpiry)

	server := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: api.NewRouter(api.Deps{
			Boxes: boxService,
			Auth:  authService,
			Log:   log,
			Ping:  pool.Ping,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting server on port %s", cfg.ServerPort)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
