package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/interfaces/http/handler"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	System             *handler.SystemHandler
	Auth               *handler.AuthHandler
	User               *handler.UserHandler
	Employee           *handler.EmployeeHandler
	Attendance         *handler.AttendanceHandler
	Payment            *handler.PaymentHandler
	Transaction        *handler.TransactionHandler
	Invoice            *handler.InvoiceHandler
	Company            *handler.CompanyHandler
	CompanyTransaction *handler.CompanyTransactionHandler
	Report             *handler.ReportHandler
	Backup             *handler.BackupHandler
}

// Dependencies are everything New needs to build the engine.
// IdempotencyStore may be nil to disable Idempotency-Key handling, and
// TracerProvider may be nil to skip request spans.
type Dependencies struct {
	HTTP             config.HTTPConfig
	IdempotencyTTL   time.Duration
	ServiceName      string
	Logger           *zap.Logger
	TracerProvider   trace.TracerProvider
	JWTService       *auth.JWTService
	TokenBlacklist   auth.TokenBlacklist
	IdempotencyStore shared.IdempotencyStore
	Handlers         Handlers
}

// New builds the engine with the full middleware stack and every route
func New(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := deps.Handlers

	engine := gin.New()
	if len(deps.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Recovery stays outermost
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	// Spans open before the request logger so log lines carry trace ids
	if deps.TracerProvider != nil {
		engine.Use(middleware.Tracing(deps.ServiceName, deps.TracerProvider))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))

	corsConfig := middleware.DefaultCORSConfig()
	if len(deps.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = deps.HTTP.CORSAllowOrigins
	}
	if len(deps.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = deps.HTTP.CORSAllowMethods
	}
	if len(deps.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = deps.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if deps.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.HTTP.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		SkipPaths:      middleware.DefaultSkipPaths,
		Logger:         log,
	}))
	if deps.IdempotencyStore != nil {
		r.Use(middleware.Idempotency(deps.IdempotencyStore, deps.IdempotencyTTL))
	}

	r.Register(systemRoutes(h)).
		Register(authRoutes(h, deps.HTTP)).
		Register(identityRoutes(h)).
		Register(hrRoutes(h)).
		Register(financeRoutes(h)).
		Register(partnerRoutes(h)).
		Register(reportRoutes(h)).
		Register(backupRoutes(h))

	api := r.Setup()
	api.GET("/ping", h.System.Ping)

	return engine
}

func systemRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", h.System.GetSystemInfo)
	return g
}

func authRoutes(h Handlers, cfg config.HTTPConfig) *DomainGroup {
	g := NewDomainGroup("auth", "/auth")

	if cfg.AuthRateLimit > 0 {
		limit := middleware.RateLimit(middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow))
		g.POST("/register", limit, h.Auth.Register)
		g.POST("/login", limit, h.Auth.Login)
	} else {
		g.POST("/register", h.Auth.Register)
		g.POST("/login", h.Auth.Login)
	}

	g.POST("/logout", h.Auth.Logout)
	g.GET("/me", h.Auth.Me)
	g.PUT("/password", h.Auth.ChangePassword)
	return g
}

func identityRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("identity", "/identity").Use(middleware.RequireRole("admin"))
	g.POST("/users", h.User.Create)
	g.GET("/users", h.User.List)
	g.GET("/users/:id", h.User.GetByID)
	return g
}

func hrRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("hr", "/hr")

	g.POST("/employees", h.Employee.Create)
	g.GET("/employees", h.Employee.List)
	g.GET("/employees/:id", h.Employee.GetByID)
	g.PATCH("/employees/:id", h.Employee.Update)
	g.GET("/employees/:id/attendance", h.Employee.ListAttendance)
	g.GET("/employees/:id/payments", h.Employee.ListPayments)
	g.GET("/employees/:id/payments/summary", h.Employee.PaymentSummary)

	g.POST("/attendance", h.Attendance.Create)
	g.GET("/attendance", h.Attendance.List)
	g.GET("/attendance/:id", h.Attendance.GetByID)

	g.POST("/payments", h.Payment.Create)
	g.GET("/payments", h.Payment.List)
	g.GET("/payments/:id", h.Payment.GetByID)
	return g
}

func financeRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("finance", "/finance")

	g.POST("/transactions", h.Transaction.Create)
	g.GET("/transactions", h.Transaction.List)
	g.GET("/transactions/:id", h.Transaction.GetByID)

	g.POST("/invoices", h.Invoice.Create)
	g.GET("/invoices", h.Invoice.List)
	g.GET("/invoices/:id", h.Invoice.GetByID)
	g.GET("/invoices/number/:number", h.Invoice.GetByNumber)
	g.PATCH("/invoices/:id/status", h.Invoice.UpdateStatus)
	return g
}

func partnerRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("partner", "/partner")

	g.POST("/companies", h.Company.Create)
	g.GET("/companies", h.Company.List)
	g.GET("/companies/:id", h.Company.GetByID)
	g.PATCH("/companies/:id", h.Company.Update)
	g.GET("/companies/:id/transactions", h.Company.ListTransactions)
	g.GET("/companies/:id/ledger", h.Company.Ledger)

	g.POST("/company-transactions", h.CompanyTransaction.Create)
	g.GET("/company-transactions", h.CompanyTransaction.List)
	g.GET("/company-transactions/:id", h.CompanyTransaction.GetByID)
	return g
}

func reportRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("report", "/reports")
	g.GET("/dashboard", h.Report.Dashboard)
	g.GET("/:kind", h.Report.Dataset)
	g.GET("/:kind/export", h.Report.Export)
	return g
}

func backupRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("backup", "/backups").Use(middleware.RequireRole("admin"))
	g.POST("", h.Backup.Create)
	g.GET("", h.Backup.List)
	g.POST("/:id/restore", h.Backup.Restore)
	return g
}
