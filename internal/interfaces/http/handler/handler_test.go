package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	backupapp "github.com/bizledger/backend/internal/application/backup"
	financeapp "github.com/bizledger/backend/internal/application/finance"
	hrapp "github.com/bizledger/backend/internal/application/hr"
	identityapp "github.com/bizledger/backend/internal/application/identity"
	partnerapp "github.com/bizledger/backend/internal/application/partner"
	reportapp "github.com/bizledger/backend/internal/application/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/export"
	"github.com/bizledger/backend/internal/infrastructure/persistence/memory"
	"github.com/bizledger/backend/internal/infrastructure/storage"
	"github.com/bizledger/backend/internal/interfaces/http/dto"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// testEnv wires real services over an isolated store
type testEnv struct {
	t      *testing.T
	engine *gin.Engine
	jwt    *auth.JWTService
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := shared.FixedClock{T: testNow}
	log := zaptest.NewLogger(t)

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	employees := memory.NewEmployeeRepository(store)
	attendance := memory.NewAttendanceRepository(store)
	payments := memory.NewEmployeePaymentRepository(store)
	transactions := memory.NewTransactionRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	companies := memory.NewCompanyRepository(store)
	companyTxns := memory.NewCompanyTransactionRepository(store)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
		Issuer:                "bizledger-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(users, jwtService, blacklist, clock, log)
	attendanceService := hrapp.NewAttendanceService(employees, attendance)
	paymentService := hrapp.NewPaymentService(employees, payments, clock)
	companyTxnService := partnerapp.NewCompanyTransactionService(companies, companyTxns, clock)
	reportService := reportapp.NewReportService(reportapp.Repositories{
		Employees:           employees,
		Attendance:          attendance,
		EmployeePayments:    payments,
		Transactions:        transactions,
		Invoices:            invoices,
		CompanyTransactions: companyTxns,
	}, clock, export.NewExcelRenderer())
	backupService := backupapp.NewService(store, storage.NewMemoryBlobStore(), "backups/", clock)

	authH := NewAuthHandler(authService)
	userH := NewUserHandler(identityapp.NewUserService(users, clock))
	employeeH := NewEmployeeHandler(hrapp.NewEmployeeService(employees), attendanceService, paymentService)
	attendanceH := NewAttendanceHandler(attendanceService)
	paymentH := NewPaymentHandler(paymentService)
	transactionH := NewTransactionHandler(financeapp.NewTransactionService(transactions, clock))
	invoiceH := NewInvoiceHandler(financeapp.NewInvoiceService(invoices, clock))
	companyH := NewCompanyHandler(partnerapp.NewCompanyService(companies, clock), companyTxnService)
	companyTxnH := NewCompanyTransactionHandler(companyTxnService)
	reportH := NewReportHandler(reportService)
	backupH := NewBackupHandler(backupService)
	systemH := NewSystemHandler("bizledger", "test", "test", nil)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", systemH.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      middleware.DefaultSkipPaths,
		Logger:         log,
	}))
	api.GET("/system/info", systemH.GetSystemInfo)
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/me", authH.Me)
	api.POST("/auth/logout", authH.Logout)
	api.PUT("/auth/password", authH.ChangePassword)

	admin := api.Group("", middleware.RequireRole("admin"))
	admin.POST("/identity/users", userH.Create)
	admin.GET("/identity/users", userH.List)
	admin.GET("/identity/users/:id", userH.GetByID)
	admin.POST("/backups", backupH.Create)
	admin.GET("/backups", backupH.List)
	admin.POST("/backups/:id/restore", backupH.Restore)

	api.POST("/hr/employees", employeeH.Create)
	api.GET("/hr/employees", employeeH.List)
	api.GET("/hr/employees/:id", employeeH.GetByID)
	api.PATCH("/hr/employees/:id", employeeH.Update)
	api.GET("/hr/employees/:id/attendance", employeeH.ListAttendance)
	api.GET("/hr/employees/:id/payments", employeeH.ListPayments)
	api.GET("/hr/employees/:id/payments/summary", employeeH.PaymentSummary)
	api.POST("/hr/attendance", attendanceH.Create)
	api.GET("/hr/attendance", attendanceH.List)
	api.GET("/hr/attendance/:id", attendanceH.GetByID)
	api.POST("/hr/payments", paymentH.Create)
	api.GET("/hr/payments", paymentH.List)
	api.GET("/hr/payments/:id", paymentH.GetByID)
	api.POST("/finance/transactions", transactionH.Create)
	api.GET("/finance/transactions", transactionH.List)
	api.GET("/finance/transactions/:id", transactionH.GetByID)
	api.POST("/finance/invoices", invoiceH.Create)
	api.GET("/finance/invoices", invoiceH.List)
	api.GET("/finance/invoices/:id", invoiceH.GetByID)
	api.GET("/finance/invoices/number/:number", invoiceH.GetByNumber)
	api.PATCH("/finance/invoices/:id/status", invoiceH.UpdateStatus)
	api.POST("/partner/companies", companyH.Create)
	api.GET("/partner/companies", companyH.List)
	api.GET("/partner/companies/:id", companyH.GetByID)
	api.PATCH("/partner/companies/:id", companyH.Update)
	api.GET("/partner/companies/:id/transactions", companyH.ListTransactions)
	api.GET("/partner/companies/:id/ledger", companyH.Ledger)
	api.POST("/partner/company-transactions", companyTxnH.Create)
	api.GET("/partner/company-transactions", companyTxnH.List)
	api.GET("/partner/company-transactions/:id", companyTxnH.GetByID)
	api.GET("/reports/dashboard", reportH.Dashboard)
	api.GET("/reports/:kind", reportH.Dataset)
	api.GET("/reports/:kind/export", reportH.Export)

	return &testEnv{t: t, engine: r, jwt: jwtService}
}

// loginAs issues a token for role without going through registration
func (e *testEnv) loginAs(role string) *testEnv {
	tok, err := e.jwt.GenerateToken(auth.GenerateTokenInput{UserID: 1, Username: "tester", Role: role})
	require.NoError(e.t, err)
	e.token = tok.AccessToken
	return e
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and its data into out when out is non-nil
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return dto.Response{Success: raw.Success, Error: raw.Error}
}
