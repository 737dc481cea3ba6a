package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/ppiankov/claimcheck/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP fact-checking service",
	Long: `Serve starts the HTTP API:

  POST /verify   {"claim": "..."}  -> verdict JSON
  GET  /healthz                    -> enabled sources
  GET  /metrics                    -> Prometheus metrics

Example:
  claimcheck serve --addr :5000
  curl -X POST localhost:5000/verify -d '{"claim":"bananas are yellow"}'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().Float64("rate-limit", 0, "requests per second allowed per client (0 disables)")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.rate_limit", serveCmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	analyzer, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(analyzer, cfg.Server, logger.Named("server"))
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}

	logger.Info("server stopped", zap.String("addr", cfg.Server.Addr))
	return nil
}
