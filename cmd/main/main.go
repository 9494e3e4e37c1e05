package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/analysis/forecast"
	"stock-dashboard/src/charts"
	"stock-dashboard/src/config"
	"stock-dashboard/src/dashboard"
	datasource "stock-dashboard/src/data_source"
	"stock-dashboard/src/data_source/stooq"
	"stock-dashboard/src/data_source/yahoo"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/network"
	"stock-dashboard/src/server"
	"stock-dashboard/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Optional snapshot recorder
	var recorder interfaces.IRecorder
	if cfg.Storage.Enabled {
		switch cfg.Storage.DBType {
		case "postgres":
			recorder, err = storage.NewPostgresRecorder(cfg, appLogger)
		default:
			// Default to SQLite
			recorder, err = storage.NewSQLiteRecorder(cfg, appLogger)
		}
		if err != nil {
			appLogger.Critical("Failed to init recorder: %v", err)
		}
		if err := recorder.Initialize(); err != nil {
			appLogger.Critical("Failed to initialize recorder schema: %v", err)
		}
		defer recorder.Close()
	}

	// Data providers: Yahoo first, Stooq as fallback
	var netMgr interfaces.INetworkManager = network.NewNetworkManager(cfg.MConfig, appLogger)
	var fetcher interfaces.IHistoryFetcher = datasource.NewFallbackFetcher(
		appLogger,
		yahoo.NewYahooFinanceSource(cfg.MConfig, netMgr),
		stooq.NewStooqSource(cfg.MConfig, netMgr),
	)

	// Computation components
	metrics := analysis.NewMetricsComputer(cfg.MConfig, appLogger)
	forecaster := forecast.NewForecastEngine(cfg)
	renderer := charts.NewChartRenderer(cfg)

	// Controller and server reference each other: the server calls the
	// controller for on-demand queries, the controller broadcasts through
	// the server.
	controller := dashboard.NewDashboardController(cfg, fetcher, metrics, forecaster, renderer, nil, recorder)
	srv := server.NewDashboardServer(cfg, controller, renderer)
	controller.Exchange = srv

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	if err := controller.Start(); err != nil {
		appLogger.Critical("Failed to start refresh loop: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	controller.Stop()
	srv.Stop()
}
