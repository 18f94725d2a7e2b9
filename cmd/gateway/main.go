package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/betbot/gorh/internal/gateway"
	"github.com/betbot/gorh/internal/metrics"
	"github.com/betbot/gorh/pkg/config"
	"github.com/betbot/gorh/pkg/logger"
	"github.com/betbot/gorh/pkg/shutdown"
	"github.com/betbot/gorh/rhcrypto/client"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", os.Getenv("RH_CONFIG"), "YAML config file")
		listenAddr  = flag.String("listen", "", "HTTP listen address (overrides config)")
		metricsAddr = flag.String("metrics", "", "metrics listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		fatal(err)
	}
	defer logger.Close()

	if *listenAddr != "" {
		cfg.Gateway.Listen = *listenAddr
	}
	if *metricsAddr != "" {
		cfg.Gateway.MetricsAddr = *metricsAddr
	}

	c, err := client.NewClient(cfg.Credentials(), cfg.ClientConfig())
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	shutdowns := shutdown.NewManager()
	if cfg.Gateway.MetricsAddr != "" {
		metricsSrv, err := metrics.StartAsync(ctx, cfg.Gateway.MetricsAddr)
		if err != nil {
			fatal(err)
		}
		shutdowns.OnShutdown("metrics", metricsSrv.Shutdown)
		logger.Infof("metrics listening on %s", cfg.Gateway.MetricsAddr)
	}

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              cfg.Gateway.Listen,
		Handler:           gateway.New(c, logger.Entry()).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	shutdowns.OnShutdown("gateway", httpSrv.Shutdown)

	go func() {
		logger.Infof("gateway listening on %s, upstream %s", cfg.Gateway.Listen, c.GetBaseURL())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdowns.Shutdown(shutdownCtx)
	logger.Infof("gateway stopped")
}

func fatal(err error) {
	logger.Entry().WithError(err).Error("gateway failed")
	os.Exit(1)
}
