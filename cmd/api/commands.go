package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/panaderia/backend/internal/api"
	"github.com/panaderia/backend/internal/core/service"
	"github.com/panaderia/backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			log := logger.Get()

			a, err := open(ctx, cfg, true)
			if err != nil {
				log.Error().Err(err).Msg("startup failed")
				return err
			}
			defer a.close()

			e := api.NewRouter(api.Options{
				Services: a.services(),
				Verifier: a.tokens,
				Probes:   a.probes(),
				Log:      logger.With("http"),
			})

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.Port).Msg("listening")
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					log.Error().Err(err).Msg("server stopped")
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the bootstrap data set into empty collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			log := logger.With("seed")
			a, err := open(ctx, cfg, false)
			if err != nil {
				log.Error().Err(err).Msg("startup failed")
				return err
			}
			defer a.close()

			seeder := service.NewSeeder(service.SeedStores{
				Supplies:   a.supplies,
				Categories: a.categories,
				Locations:  a.locations,
				Products:   a.products,
				Orders:     a.orders,
				Branches:   a.branches,
				Clients:    a.clients,
				Admins:     a.admins,
			}, a.clientService(log), a.administratorService(log), log)

			if err := seeder.Run(ctx); err != nil {
				log.Error().Err(err).Msg("seed failed")
				return err
			}
			return nil
		},
	}
}
