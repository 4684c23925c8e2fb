package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	appcatalog "github.com/bizadmin/backend/internal/application/catalog"
	appidentity "github.com/bizadmin/backend/internal/application/identity"
	apppartner "github.com/bizadmin/backend/internal/application/partner"
	appreport "github.com/bizadmin/backend/internal/application/report"
	apptrade "github.com/bizadmin/backend/internal/application/trade"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/infrastructure/auth"
	"github.com/bizadmin/backend/internal/infrastructure/cache"
	"github.com/bizadmin/backend/internal/infrastructure/config"
	"github.com/bizadmin/backend/internal/infrastructure/logger"
	"github.com/bizadmin/backend/internal/infrastructure/persistence"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/bizadmin/backend/internal/interfaces/http/handler"
	"github.com/bizadmin/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/bizadmin/backend/docs"
)

const version = "1.0.0"

//	@title			Business Admin API
//	@version		1.0
//	@description	Invoicing, cash flow and balance reconciliation backend for the small-business admin panel

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log, persistence.Options{
		LogLevel:      logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: 200 * time.Millisecond,
		Tracing:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis is optional: without it balances are computed fresh on
	// every request.
	var balanceCache apppartner.BalanceCache
	var invalidator appbilling.BalanceCacheInvalidator
	if redisClient, err := cache.NewRedisClient(&cfg.Redis); err != nil {
		log.Warn("Redis unavailable, balance caching disabled", zap.Error(err))
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		c := cache.NewRedisBalanceCache(redisClient, cfg.Billing.BalanceCacheTTL)
		balanceCache = c
		invalidator = cache.NewBalanceInvalidator(c, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	cashTxRepo := persistence.NewGormCashTransactionRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	returnRepo := persistence.NewGormReturnExchangeRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	overflowPolicy := billing.OverflowPolicy(cfg.Billing.AllocationOverflowPolicy)
	if !overflowPolicy.IsValid() {
		log.Warn("Unknown allocation overflow policy, falling back to absorb",
			zap.String("policy", cfg.Billing.AllocationOverflowPolicy))
		overflowPolicy = billing.OverflowPolicyAbsorb
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	allocationService := appbilling.NewAllocationService(invoiceRepo, overflowPolicy, log)
	cashTxService := appbilling.NewCashTransactionService(cashTxRepo, allocationService, cashTxRepo, txManager, invalidator, log)
	invoiceService := appbilling.NewInvoiceService(invoiceRepo, log)
	clientService := apppartner.NewClientService(clientRepo, log)
	supplierService := apppartner.NewSupplierService(supplierRepo, log)
	balanceService := apppartner.NewBalanceService(clientRepo, supplierRepo, invoiceRepo, cashTxRepo, purchaseRepo, returnRepo, balanceCache, log)
	purchaseService := apptrade.NewPurchaseService(purchaseRepo, txManager, log)
	returnService := apptrade.NewReturnExchangeService(returnRepo, cashTxService, txManager, log)
	inventoryService := appcatalog.NewInventoryService(inventoryRepo, log)
	reportService := appreport.NewReportService(invoiceRepo, cashTxRepo, purchaseRepo, returnRepo, log)
	authService := appidentity.NewAuthService(adminRepo, jwtService, log)

	engine := router.New(cfg, log, jwtService, router.Handlers{
		System:           handler.NewSystemHandler(db.DB, version),
		Auth:             handler.NewAuthHandler(authService),
		Clients:          handler.NewClientHandler(clientService, balanceService),
		Suppliers:        handler.NewSupplierHandler(supplierService, balanceService),
		Invoices:         handler.NewInvoiceHandler(invoiceService),
		CashTransactions: handler.NewCashTransactionHandler(cashTxService),
		Purchases:        handler.NewPurchaseHandler(purchaseService),
		ReturnExchanges:  handler.NewReturnExchangeHandler(returnService),
		Inventory:        handler.NewInventoryHandler(inventoryService),
		Reports:          handler.NewReportHandler(reportService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
