package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	partnerapp "github.com/bizledger/backend/internal/application/partner"
	"github.com/bizledger/backend/internal/domain/report"
)

func TestCompanyHandler(t *testing.T) {
	env := newTestEnv(t).loginAs("user")

	w := env.do(http.MethodPost, "/api/v1/partner/companies", map[string]any{"name": "Globex", "type": "supplier"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var company partnerapp.CompanyResponse
	decode(t, w, &company)
	assert.Equal(t, "active", company.Status)
	assert.Equal(t, "2024-05-01", company.RegistrationDate.String())

	w = env.do(http.MethodPatch, "/api/v1/partner/companies/1", map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &company)
	assert.Equal(t, "inactive", company.Status)
	assert.Equal(t, "supplier", company.Type)

	var active []partnerapp.CompanyResponse
	decode(t, env.do(http.MethodGet, "/api/v1/partner/companies?status=active", nil), &active)
	assert.Empty(t, active)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPatch, "/api/v1/partner/companies/5", map[string]any{"name": "X"}).Code)
}

func TestCompanyTransactionHandler_Ledger(t *testing.T) {
	env := newTestEnv(t).loginAs("user")
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/partner/companies", map[string]any{"name": "Globex"}).Code)

	w := env.do(http.MethodPost, "/api/v1/partner/company-transactions", map[string]any{
		"companyId": 2, "amount": "10", "transactionType": "incoming",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, body := range []map[string]any{
		{"companyId": 1, "amount": "200.25", "transactionType": "incoming", "invoiceNumber": "INV-7"},
		{"companyId": 1, "amount": "20.50", "transactionType": "outgoing"},
	} {
		w := env.do(http.MethodPost, "/api/v1/partner/company-transactions", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var entries []partnerapp.CompanyTransactionResponse
	decode(t, env.do(http.MethodGet, "/api/v1/partner/companies/1/transactions", nil), &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID, "the rejected entry consumed no id")

	var ledger report.CompanyLedger
	w = env.do(http.MethodGet, "/api/v1/partner/companies/1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ledger)
	assert.Equal(t, "179.75", ledger.Balance.String())
	assert.Equal(t, "Globex", ledger.Company.Name)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/partner/companies/3/ledger", nil).Code)
}
