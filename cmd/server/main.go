package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	backupapp "github.com/bizledger/backend/internal/application/backup"
	financeapp "github.com/bizledger/backend/internal/application/finance"
	hrapp "github.com/bizledger/backend/internal/application/hr"
	identityapp "github.com/bizledger/backend/internal/application/identity"
	partnerapp "github.com/bizledger/backend/internal/application/partner"
	reportapp "github.com/bizledger/backend/internal/application/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/cache"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/export"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/infrastructure/persistence/memory"
	"github.com/bizledger/backend/internal/infrastructure/scheduler"
	"github.com/bizledger/backend/internal/infrastructure/storage"
	"github.com/bizledger/backend/internal/infrastructure/telemetry"
	"github.com/bizledger/backend/internal/interfaces/http/handler"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
	"github.com/bizledger/backend/internal/interfaces/http/router"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizLedger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()
	clock := shared.SystemClock{}

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tracer.Shutdown(context.Background())
	}()

	// Repositories share one in-process store
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	paymentRepo := memory.NewEmployeePaymentRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)
	invoiceRepo := memory.NewInvoiceRepository(store)
	companyRepo := memory.NewCompanyRepository(store)
	companyTxnRepo := memory.NewCompanyTransactionRepository(store)

	blobs, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize backup storage", zap.Error(err))
	}

	blacklist, closeBlacklist, err := newTokenBlacklist(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize token blacklist", zap.Error(err))
	}
	defer closeBlacklist()

	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		factory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(!cfg.IsProduction()),
		)
		idempotencyStore, err = factory.CreateStore(ctx, cfg.Idempotency.Driver)
		if err != nil {
			log.Fatal("Failed to initialize idempotency store", zap.Error(err))
		}
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	pdfRenderer := export.NewPDFRenderer(cfg.Export, log)
	defer func() {
		_ = pdfRenderer.Close()
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, clock, log)
	userService := identityapp.NewUserService(userRepo, clock)
	employeeService := hrapp.NewEmployeeService(employeeRepo)
	attendanceService := hrapp.NewAttendanceService(employeeRepo, attendanceRepo)
	paymentService := hrapp.NewPaymentService(employeeRepo, paymentRepo, clock)
	transactionService := financeapp.NewTransactionService(transactionRepo, clock)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, clock)
	companyService := partnerapp.NewCompanyService(companyRepo, clock)
	companyTxnService := partnerapp.NewCompanyTransactionService(companyRepo, companyTxnRepo, clock)
	reportService := reportapp.NewReportService(reportapp.Repositories{
		Employees:           employeeRepo,
		Attendance:          attendanceRepo,
		EmployeePayments:    paymentRepo,
		Transactions:        transactionRepo,
		Invoices:            invoiceRepo,
		CompanyTransactions: companyTxnRepo,
	}, clock, export.NewExcelRenderer(), pdfRenderer)
	backupService := backupapp.NewService(store, blobs, cfg.Storage.Prefix, clock)

	if created, err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.Fatal("Failed to create bootstrap administrator", zap.Error(err))
	} else if !created && cfg.Admin.Username != "" {
		log.Info("Bootstrap administrator already exists", zap.String("username", cfg.Admin.Username))
	}

	// A nil *BackupCronScheduler must not reach the handler as a non-nil interface
	var backupStatus handler.StatusReporter
	if cfg.Backup.Schedule != "" {
		backupScheduler, err := scheduler.NewBackupCronScheduler(scheduler.BackupCronSchedulerConfig{
			Schedule:   cfg.Backup.Schedule,
			JobTimeout: cfg.Backup.Timeout,
		}, backupService, log)
		if err != nil {
			log.Fatal("Failed to create backup scheduler", zap.Error(err))
		}
		backupScheduler.Start()
		defer func() {
			if err := backupScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping backup scheduler", zap.Error(err))
			}
		}()
		backupStatus = backupScheduler
		log.Info("Backup scheduler started", zap.String("schedule", cfg.Backup.Schedule))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Dependencies{
		HTTP:             cfg.HTTP,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		ServiceName:      cfg.Telemetry.ServiceName,
		Logger:           log,
		TracerProvider:   tracer.Provider(),
		JWTService:       jwtService,
		TokenBlacklist:   blacklist,
		IdempotencyStore: idempotencyStore,
		Handlers: router.Handlers{
			System:             handler.NewSystemHandler(cfg.App.Name, version, cfg.App.Env, backupStatus),
			Auth:               handler.NewAuthHandler(authService),
			User:               handler.NewUserHandler(userService),
			Employee:           handler.NewEmployeeHandler(employeeService, attendanceService, paymentService),
			Attendance:         handler.NewAttendanceHandler(attendanceService),
			Payment:            handler.NewPaymentHandler(paymentService),
			Transaction:        handler.NewTransactionHandler(transactionService),
			Invoice:            handler.NewInvoiceHandler(invoiceService),
			Company:            handler.NewCompanyHandler(companyService, companyTxnService),
			CompanyTransaction: handler.NewCompanyTransactionHandler(companyTxnService),
			Report:             handler.NewReportHandler(reportService),
			Backup:             handler.NewBackupHandler(backupService),
		},
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newBlobStore returns the backup blob store for the configured driver
func newBlobStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (backupapp.BlobStore, error) {
	if cfg.Storage.Driver != "s3" {
		log.Warn("Backups are kept in memory and lost on restart; set storage.driver=s3 to persist them")
		return storage.NewMemoryBlobStore(), nil
	}

	s3Store, err := storage.NewS3BlobStore(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s3Store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Using S3 backup storage",
		zap.String("bucket", s3Store.GetBucket()),
		zap.String("endpoint", cfg.Storage.Endpoint),
	)
	return s3Store, nil
}

// newTokenBlacklist returns the revocation list for the configured driver and
// a func that releases it
func newTokenBlacklist(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.TokenBlacklist, func(), error) {
	if cfg.JWT.BlacklistDriver != "redis" {
		return auth.NewInMemoryTokenBlacklist(), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Using Redis token blacklist", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisTokenBlacklist(client), func() {
		if err := client.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}, nil
}
