package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/app/provider"
	"holo_vault_analyzer/internal/app/service"
	"holo_vault_analyzer/internal/infrastructure/configloader"
	"holo_vault_analyzer/internal/infrastructure/fhe"
	clientprovider "holo_vault_analyzer/internal/infrastructure/network/client"
	"holo_vault_analyzer/internal/infrastructure/restapi"
	"holo_vault_analyzer/internal/infrastructure/session"
	"holo_vault_analyzer/internal/pkg/logger"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const (
	defaultConfigPath = "config/config.yml"
	shutdownTimeout   = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.Init(zapLogger, cfg.Logging.Level)

	appLogger := logger.NewSlogAdapter()
	logger.Info("Holo Vault Analyzer starting", "config", configPath, "mock_contract", cfg.Contract.UseMock)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	contract, err := newContractClient(ctx, cfg, m, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize contract client", "error", err)
	}

	encryptor := fhe.NewMockEncryptor()
	pools := provider.NewPoolProvider(cfg.Dashboard.PoolsFile, appLogger.With("component", "PoolProvider"))
	if _, err := pools.Pools(); err != nil {
		logger.Fatal("Failed to load pools", "file", cfg.Dashboard.PoolsFile, "error", err)
	}

	analytics := service.NewAnalyticsService(
		contract,
		time.Duration(cfg.Cache.AnalyticsTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		appLogger.With("component", "AnalyticsService"),
	)
	go func() {
		if err := analytics.Load(ctx); err != nil {
			logger.Warn("Initial analytics read failed", "error", err)
		}
	}()

	dashboard := service.NewDashboardService(analytics, pools, cfg.Dashboard.UseDemoAnalytics, appLogger.With("component", "DashboardService"))
	details := service.NewPoolDetailService(pools, encryptor, appLogger.With("component", "PoolDetailService"))
	poolService := service.NewPoolService(contract, encryptor, cfg.Dashboard.MaxConcurrentRPC, appLogger.With("component", "PoolService"))

	sessionTTL := time.Duration(cfg.Dashboard.SessionTTLMinutes) * time.Minute
	sessions := session.NewStore(sessionTTL, time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute, m)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := restapi.SetupRouter(restapi.Handlers{
		Dashboard: restapi.NewDashboardHandler(dashboard, analytics),
		Wallet:    restapi.NewWalletHandler(appLogger.With("component", "WalletHandler")),
		Pools:     restapi.NewPoolHandler(pools, details, poolService),
		Contract:  restapi.NewContractHandler(contract, poolService, encryptor),
		FHE:       restapi.NewFHEHandler(encryptor),
	}, restapi.RouterOptions{
		Sessions:        sessions,
		SessionTTL:      sessionTTL,
		Metrics:         m,
		Gatherer:        registry,
		Logger:          zapLogger.Named("http"),
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerSpecPath: cfg.Swagger.SpecPath,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, draining HTTP server")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}
	zapLogger.Info("Holo Vault Analyzer stopped", zap.Int("sessions_open", sessions.Count()))
}

// newContractClient returns the in-memory contract in mock mode, otherwise a
// client dialed against the configured RPC endpoints.
func newContractClient(ctx context.Context, cfg *configloader.Config, m *metrics.Metrics, log port.Logger) (port.ContractClient, error) {
	if cfg.Contract.UseMock {
		logger.Warn("Using the in-memory contract, no RPC calls will be made")
		return clientprovider.NewMockHoloVaultClient(common.HexToAddress(cfg.Chain.ContractAddress), log.With("component", "MockHoloVaultClient")), nil
	}
	p := clientprovider.NewHoloVaultClientProvider(cfg.Chain, nil, m, log)
	c, err := p.GetClient(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}
