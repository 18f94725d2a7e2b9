package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/betbot/gorh/internal/quotewatch"
	"github.com/betbot/gorh/pkg/config"
	"github.com/betbot/gorh/pkg/logger"
	"github.com/betbot/gorh/rhcrypto/client"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", os.Getenv("RH_CONFIG"), "YAML config file")
		symbols    = flag.String("symbols", "", "comma separated symbols (overrides config)")
		interval   = flag.Duration("interval", 0, "poll interval (overrides config)")
	)
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fatal(err)
	}

	// The terminal belongs to the TUI; logs only go to a file.
	logCfg := cfg.LoggerConfig()
	if logCfg.OutputFile == "" {
		logCfg.OutputFile = filepath.Join("logs", "quote-watcher.log")
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		fatal(err)
	}
	defer devNull.Close()
	logCfg.Console = devNull
	if err := logger.Init(logCfg); err != nil {
		fatal(err)
	}
	defer logger.Close()

	watch := cfg.Watcher.Symbols
	if *symbols != "" {
		watch = nil
		for _, s := range strings.Split(*symbols, ",") {
			if s = strings.TrimSpace(s); s != "" {
				watch = append(watch, s)
			}
		}
	}
	every := cfg.Watcher.Interval
	if *interval > 0 {
		every = *interval
	}

	c, err := client.NewClient(cfg.Credentials(), cfg.ClientConfig())
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("watching %s every %s", strings.Join(watch, ","), every)
	if err := quotewatch.Run(ctx, c, watch, every); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
