package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/config"
)

var generatedAt = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func financialDataset(t *testing.T) report.Dataset {
	t.Helper()
	today := valueobject.NewDate(2024, time.May, 1)
	var txns []finance.Transaction
	for i, in := range []finance.TransactionInput{
		{TransactionType: finance.TransactionTypeIncome, Amount: decimal.RequireFromString("1500.5"), Category: "sales <web>"},
		{TransactionType: finance.TransactionTypeExpense, Amount: decimal.RequireFromString("200"), Category: "rent"},
	} {
		txn, err := finance.NewTransaction(in, today)
		require.NoError(t, err)
		txn.ID = int64(i + 1)
		txns = append(txns, *txn)
	}
	r, err := report.NewDateRange(valueobject.NewDate(2024, time.April, 1), valueobject.Date{})
	require.NoError(t, err)
	return report.FinancialDataset(txns, r, generatedAt)
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"employeeId":           "Employee Id",
		"transactionType":      "Transaction Type",
		"company-transactions": "Company Transactions",
		"amount":               "Amount",
		"isActive":             "Is Active",
	}
	for in, want := range tests {
		assert.Equal(t, want, Humanize(in), in)
	}
}

func TestRangeLabel(t *testing.T) {
	ds := financialDataset(t)
	assert.Equal(t, "2024-04-01 to today", RangeLabel(ds))
	assert.Equal(t, "Financial Report", Title(ds))
}

func TestExcelRenderer(t *testing.T) {
	ds := financialDataset(t)
	r := NewExcelRenderer()
	assert.Equal(t, "xlsx", r.Format())
	assert.Equal(t, ExcelContentType, r.ContentType())

	data, err := r.Render(context.Background(), ds)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := "Financial"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Financial Report", title)

	header, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Transaction Type", header)

	category, err := f.GetCellValue(sheet, "D4")
	require.NoError(t, err)
	assert.Equal(t, "sales <web>", category)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	// title, range, header, 2 data rows, blank, 3 totals
	assert.Len(t, rows, 9)

	label, err := f.GetCellValue(sheet, "A9")
	require.NoError(t, err)
	assert.Equal(t, "Balance", label)
}

func TestRenderHTML(t *testing.T) {
	ds := financialDataset(t)

	html, err := RenderHTML(ds)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Financial Report</title>")
	assert.Contains(t, html, "<th>Transaction Type</th>")
	assert.Contains(t, html, "sales &lt;web&gt;")
	assert.Contains(t, html, `<td class="num">1500.50</td>`)
	assert.Contains(t, html, "1300.50")
	assert.NotContains(t, html, "No records")

	empty := report.EmployeesDataset(nil, report.DateRange{}, generatedAt)
	html, err = RenderHTML(empty)
	require.NoError(t, err)
	assert.Contains(t, html, "No records in this period.")
	assert.NotContains(t, html, "Income")
}

func TestPDFRenderer_Metadata(t *testing.T) {
	r := NewPDFRenderer(configWithRemote(), nil)
	defer r.Close()

	assert.Equal(t, "pdf", r.Format())
	assert.Equal(t, PDFContentType, r.ContentType())
	assert.Equal(t, defaultRenderTimeout, r.timeout)
}

func configWithRemote() config.ExportConfig {
	return config.ExportConfig{ChromeRemoteURL: "ws://127.0.0.1:9222/devtools/browser/test"}
}
