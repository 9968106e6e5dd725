package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/usnistgov/rmm-go/internal/rmmgw/config"
	"github.com/usnistgov/rmm-go/internal/rmmgw/healthserver"
	"github.com/usnistgov/rmm-go/internal/rmmgw/httpapi"
	"github.com/usnistgov/rmm-go/internal/rmmgw/jsoncodec"
	"github.com/usnistgov/rmm-go/internal/rmmgw/logging"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store/memstore"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the metadata query gateway",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	serveCmd.Flags().Int("http-port", config.DefaultHTTPPort, "HTTP listener port")
	serveCmd.Flags().Int("health-port", config.DefaultHealthPort, "health/metrics listener port")
	serveCmd.Flags().String("log-style", config.DefaultLogStyle, "log output style: terminal, json, logfmt, noop")
	serveCmd.Flags().String("log-level", config.DefaultLogLevel, "log level")
	serveCmd.Flags().String("store-kind", config.DefaultStoreKind, "store backend: memory, antfly")
}

func runServe(cmd *cobra.Command, args []string) error {
	jsoncodec.SetConfig(jsoncodec.SonicConfig())

	cfg, err := config.Load(cmd, configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LoggingConfig())
	defer logger.Sync()

	collStore, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	ready := true
	healthSrv := healthserver.Start(logger, cfg.Health.Port, func() bool { return ready })

	server := httpapi.NewServer(collStore, logger)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.HTTP.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 20 * time.Second,
	}

	go func() {
		logger.Info("starting gateway", zap.Int("port", cfg.HTTP.Port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("gateway server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	ready = false
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("gateway shutdown error", zap.Error(err))
	}
	if err := healthserver.Stop(shutdownCtx, healthSrv); err != nil {
		logger.Error("health server shutdown error", zap.Error(err))
	}
	return nil
}

func newStore(cfg config.Config) (store.CollectionStore, error) {
	switch cfg.Store.Kind {
	case "memory", "":
		return memstore.New(), nil
	case "antfly":
		return nil, fmt.Errorf("antfly store backend is not available in this build (see DESIGN.md); configure store.kind=memory")
	default:
		return nil, fmt.Errorf("unknown store.kind %q", cfg.Store.Kind)
	}
}
