package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/internal/server"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverConfigFile string
	serveAddress     string
	maxRequestSize   string
)

// serveCmd runs the dashboard web server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard web UI and API",
	Long: `Serve the BBZ Solar dashboard. Server settings are read from the server
configuration file; a missing file means defaults. The dashboard configuration
is the --config file unless the server configuration names another one.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigFile, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override, e.g. :8080")
	serveCmd.Flags().StringVar(&maxRequestSize, "max-request-size", "", "request body limit override, e.g. 512K or 1M")
}

func runServe(cmd *cobra.Command, args []string) error {
	serverCfg, err := server.LoadConfig(serverConfigFile)
	if err != nil {
		return fail("cmd.runServe", err)
	}
	if serveAddress != "" {
		serverCfg.Address = serveAddress
	}
	if maxRequestSize != "" {
		size, err := server.ParseSize(maxRequestSize)
		if err != nil {
			return fail("cmd.runServe", err)
		}
		serverCfg.SetRequestSizeBytes(size)
	}

	serveLogger := logger
	if serverCfg.Logging != (config.LoggingConfig{}) {
		serveLogger, err = initializeLogger(serverCfg.Logging, logLevel)
		if err != nil {
			return fail("cmd.runServe", fmt.Errorf("failed to initialize server logger: %w", err))
		}
		defer func() {
			_ = serveLogger.Sync()
		}()
	}

	dashboardConf := conf
	if !cmd.Flags().Changed("config") && serverCfg.ConfigFile != "" && serverCfg.ConfigFile != cfgFile {
		dashboardConf, err = config.LoadOrDefault(serverCfg.ConfigFile)
		if err != nil {
			return fail("cmd.runServe", fmt.Errorf("failed to load configuration at %s: %w", serverCfg.ConfigFile, err))
		}
	}

	settings := config.NewSettings(dashboardConf)
	store := dashboard.NewStore(serveLogger, dashboard.PricingFrom(dashboardConf.Calculation))
	handler := server.NewHandler(serveLogger, serverCfg.RequestSizeBytes(), Version, server.Services{
		Store:    store,
		Settings: settings,
	})

	srv := &http.Server{
		Addr:              serverCfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		serveLogger.Info("starting dashboard server",
			zap.String("op", "cmd.runServe"),
			zap.String("address", serverCfg.Address),
			zap.Int64("maxRequestSize", serverCfg.RequestSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveLogger.Error("server failed",
				zap.String("op", "cmd.runServe"),
				zap.Error(err),
			)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	serveLogger.Info("shutting down dashboard server",
		zap.String("op", "cmd.runServe"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fail("cmd.runServe", fmt.Errorf("graceful shutdown failed: %w", err))
	}
	return nil
}
