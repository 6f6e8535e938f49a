package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/infrastructure/config"
)

// PDFContentType is the MIME type of PDF documents
const PDFContentType = "application/pdf"

const defaultRenderTimeout = 30 * time.Second

// A4 in inches, the unit Chrome's print API uses
const (
	a4Width  = 210 / 25.4
	a4Height = 297 / 25.4
	margin   = 12 / 25.4
)

var documentTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"humanize": Humanize,
	"amount":   isAmountColumn,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 10px; color: #222; }
  h1 { font-size: 18px; margin: 0 0 4px; }
  .meta { color: #666; margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; }
  th { background: #ddebf7; text-align: left; border-bottom: 1px solid #000; padding: 4px; }
  td { border-bottom: 1px solid #e5e5e5; padding: 3px 4px; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  .totals { margin-top: 12px; width: auto; }
  .empty { color: #888; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.Range}} &middot; generated {{.GeneratedAt}}</div>
{{if .Rows}}
<table>
  <thead><tr>{{range .Columns}}<th>{{humanize .Title}}</th>{{end}}</tr></thead>
  <tbody>
  {{range .Rows}}<tr>{{range $i, $v := .}}<td{{if amount (index $.Columns $i).Key}} class="num"{{end}}>{{$v}}</td>{{end}}</tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p class="empty">No records in this period.</p>
{{end}}
{{with .Totals}}
<table class="totals">
  <tr><th>Income</th><td class="num">{{.Income.StringFixed 2}}</td></tr>
  <tr><th>Expenses</th><td class="num">{{.Expenses.StringFixed 2}}</td></tr>
  <tr><th>Balance</th><td class="num">{{.Balance.StringFixed 2}}</td></tr>
</table>
{{end}}
</body>
</html>`))

type documentData struct {
	Title       string
	Range       string
	GeneratedAt string
	Columns     []report.Column
	Rows        [][]string
	Totals      *report.Totals
}

// RenderHTML lays the dataset out as a standalone HTML document
func RenderHTML(ds report.Dataset) (string, error) {
	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, documentData{
		Title:       Title(ds),
		Range:       RangeLabel(ds),
		GeneratedAt: ds.GeneratedAt.Format("2006-01-02 15:04"),
		Columns:     ds.Columns,
		Rows:        ds.Rows,
		Totals:      ds.Totals,
	})
	if err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

// PDFRenderer prints the HTML layout of a dataset with headless Chrome
type PDFRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewPDFRenderer creates a renderer. With a ChromeRemoteURL every Render
// opens a tab in that running browser; otherwise every Render launches its
// own headless Chrome process and closes it when done.
func NewPDFRenderer(cfg config.ExportConfig, logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RenderTimeout
	if timeout == 0 {
		timeout = defaultRenderTimeout
	}

	r := &PDFRenderer{timeout: timeout, logger: logger}
	if cfg.ChromeRemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.ChromeRemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Format returns "pdf"
func (r *PDFRenderer) Format() string { return "pdf" }

// ContentType returns the PDF MIME type
func (r *PDFRenderer) ContentType() string { return PDFContentType }

// Render prints the dataset to an A4 PDF
func (r *PDFRenderer) Render(ctx context.Context, ds report.Dataset) ([]byte, error) {
	html, err := RenderHTML(ds)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// Stop the browser tab when the request context ends
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithLandscape(len(ds.Columns) > 6).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", r.timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("generated PDF is empty")
	}

	r.logger.Info("PDF rendered",
		zap.String("kind", string(ds.Kind)),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return pdfData, nil
}

// Close releases the browser allocator
func (r *PDFRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
