package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goeen_log "github.com/eencloud/goeen/log"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/api"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/config"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/core"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/delivery"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/device"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/spool"
)

func main() {
	logger := goeen_log.NewContext(os.Stdout, "", goeen_log.LevelInfo).GetLogger("thermal-printer", goeen_log.LevelInfo)
	logger.Info("Starting thermal printer agent...")

	dataDir := core.GetDataDirectory()

	cfg, err := config.Load(dataDir)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	printer := device.NewPrinter(logger, cfg.Device.Port, cfg.Device.Baud)
	if printer.Detect() {
		logger.Infof("Printer ready on %s", printer.Name())
	} else {
		logger.Errorf("No printer detected; print endpoints will refuse until restart")
	}

	spooler := spool.New(logger, cfg.Spooler.Queue)
	orchestrator := delivery.NewOrchestrator(logger, printer, spooler)
	renderer := receipt.NewRenderer(logger)
	audit := core.NewAuditLogger(filepath.Join(dataDir, "audit"), 50, logger)

	server := api.NewServer(cfg.Listen, logger, printer, orchestrator, renderer, audit)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("API Server failed: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := server.Stop(ctx); err != nil {
		logger.Errorf("API Server stop failed: %v", err)
	}
	cancel()
	logger.Info("Thermal printer agent stopped")
}
