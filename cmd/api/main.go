// @title                       Panadería API
// @version                     1.0
// @description                 Clientes, administradores, catálogo, pedidos y sucursales de la panadería.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/panaderia/backend/internal/pkg/config"
	"github.com/panaderia/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "panaderia",
		Short:         "Panadería REST backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load(envFile)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serveCmd(), seedCmd())
	return root
}

// bootstrap loads configuration and initialises the logger shared by every
// sub-command.
func bootstrap(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "panaderia"})
		log.Error().Err(err).Msg("invalid configuration")
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "panaderia",
	})
	return cfg, nil
}
