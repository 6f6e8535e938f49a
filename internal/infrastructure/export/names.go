// Package export renders report datasets as Excel workbooks and PDF documents.
package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bizledger/backend/internal/domain/report"
)

// Humanize turns a camelCase or kebab-case key into title case words,
// e.g. "employeeId" -> "Employee Id", "company-transactions" -> "Company Transactions".
func Humanize(key string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range key {
		switch {
		case r == '-' || r == '_':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return cases.Title(language.English).String(b.String())
}

// Title is the document title of a dataset
func Title(ds report.Dataset) string {
	return Humanize(string(ds.Kind)) + " Report"
}

// RangeLabel describes the dataset's date window
func RangeLabel(ds report.Dataset) string {
	start, end := "beginning", "today"
	if !ds.Range.Start.IsZero() {
		start = ds.Range.Start.String()
	}
	if !ds.Range.End.IsZero() {
		end = ds.Range.End.String()
	}
	return start + " to " + end
}

// isAmountColumn reports whether a column holds decimal money values
func isAmountColumn(key string) bool {
	return key == "amount" || key == "salary"
}
