package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonkit/backend/internal/application/cashdesk"
	"github.com/salonkit/backend/internal/application/commissions"
	"github.com/salonkit/backend/internal/application/finance"
	sales "github.com/salonkit/backend/internal/application/sales"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/config"
	"github.com/salonkit/backend/internal/infrastructure/event"
	"github.com/salonkit/backend/internal/infrastructure/logger"
	"github.com/salonkit/backend/internal/infrastructure/persistence"
	"github.com/salonkit/backend/internal/infrastructure/sequence"
	"github.com/salonkit/backend/internal/interfaces/http/handler"
	"github.com/salonkit/backend/internal/interfaces/http/middleware"
	"github.com/salonkit/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 4 << 20 // 4 MiB

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SalonKit Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Document numbering (sale numbers, invoices, account numbers) lives in
	// Redis so multiple instances never hand out the same number. A missing
	// Redis falls back to process-local counters, which is only safe for a
	// single instance.
	var sequences shared.SequenceGenerator
	redisSequences, err := sequence.NewRedisSequenceGenerator(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory sequences", zap.Error(err))
		sequences = sequence.NewInMemorySequenceGenerator()
	} else {
		defer func() {
			if err := redisSequences.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		sequences = redisSequences
		log.Info("Redis sequence generator connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	personRepo := persistence.NewGormPersonRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	registerRepo := persistence.NewGormCashRegisterRepository(db.DB)
	transactionRepo := persistence.NewGormCashTransactionRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Application services
	saleService := sales.NewSaleService(saleRepo, sequences, log)
	closeService := sales.NewCloseSaleService(saleRepo, personRepo, commissionRepo, ledgerRepo, sequences, txManager, log)
	commissionService := commissions.NewCommissionService(commissionRepo, log)
	accountService := finance.NewAccountService(ledgerRepo, sequences, log)
	cashService := cashdesk.NewCashService(registerRepo, transactionRepo, txManager, log)

	// Event bus with the audit-log subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingEventHandler(log))

	closeService.SetEventPublisher(eventBus)
	accountService.SetEventPublisher(eventBus)
	cashService.SetEventPublisher(eventBus)

	// HTTP handlers
	saleHandler := handler.NewSaleHandler(saleService, closeService)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	financeHandler := handler.NewFinanceHandler(accountService)
	cashdeskHandler := handler.NewCashdeskHandler(cashService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(maxRequestBodyBytes))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(saleHandler).
		Register(commissionHandler).
		Register(financeHandler).
		Register(cashdeskHandler)
	r.Setup()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
