package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/domain/pdf"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderBillPdf(ctx context.Context, doc *pdf.PrintDocument) ([]byte, error)
}

const (
	margin     = 10.0
	rowHeight  = 5.0
	fontFamily = "Arial"
	fontSize   = 8.0
)

// column widths as a share of the printable width: SR, Description, QTY, Unit, Rate, Amount
var columnShares = []float64{0.08, 0.40, 0.10, 0.12, 0.12, 0.18}

var columnTitles = []string{"SR", "Description", "QTY", "Unit", "Rate", "Amount"}

type service struct {
	pageSize types.PageSize
	logger   *logger.Logger
}

// NewGenerator creates a new PDF service
func NewGenerator(cfg *config.Configuration, log *logger.Logger) Generator {
	return &service{
		pageSize: cfg.Print.PageSize,
		logger:   log,
	}
}

// RenderBillPdf lays out every print page of doc on its own pdf page,
// the challan header before the first page and the totals after the last one
func (s *service) RenderBillPdf(ctx context.Context, doc *pdf.PrintDocument) ([]byte, error) {
	if doc == nil {
		return nil, ierr.NewError("print document is required").
			WithHint("Nothing to print").
			Mark(ierr.ErrValidation)
	}

	pageSize := doc.PageSize
	if pageSize == "" {
		pageSize = s.pageSize
	}
	if err := pageSize.Validate(); err != nil {
		return nil, err
	}

	f := gofpdf.New("P", "mm", string(pageSize), "")
	f.SetMargins(margin, margin, margin)
	f.SetAutoPageBreak(true, margin)
	f.SetTitle(fmt.Sprintf("Bill #%s", doc.BillNumber), true)

	pageWidth, _ := f.GetPageSize()
	widths := make([]float64, len(columnShares))
	for i, share := range columnShares {
		widths[i] = (pageWidth - 2*margin) * share
	}

	f.AddPage()
	s.writeHeader(f, doc, pageWidth-2*margin)

	for i, page := range doc.Pages {
		if i > 0 {
			f.AddPage()
		}
		s.writeTable(f, page, widths)
	}

	s.writeTotals(f, doc, pageWidth-2*margin)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render bill pdf").
			Mark(ierr.ErrSystem)
	}

	s.logger.Debugw("rendered bill pdf",
		"bill_number", doc.BillNumber,
		"pages", f.PageCount(),
		"rows", doc.RowCount(),
		"bytes", buf.Len())

	return buf.Bytes(), nil
}

func (s *service) writeHeader(f *gofpdf.Fpdf, doc *pdf.PrintDocument, width float64) {
	half := width / 2

	f.SetFont(fontFamily, "B", 10)
	f.CellFormat(width, 6, doc.Title, "", 1, "C", false, 0, "")
	f.CellFormat(width, 6, doc.ShopName, "", 1, "C", false, 0, "")
	f.Ln(2)

	f.SetFont(fontFamily, "", fontSize+1)
	f.CellFormat(half, rowHeight, fmt.Sprintf("Bill #%s", doc.BillNumber), "", 0, "L", false, 0, "")
	f.CellFormat(half, rowHeight, "Billing Date: "+doc.BillingDate.String(), "", 1, "R", false, 0, "")
	f.CellFormat(half, rowHeight, "Name: "+doc.CustomerName, "", 0, "L", false, 0, "")
	f.CellFormat(half, rowHeight, "Location: "+doc.Location, "", 1, "R", false, 0, "")
	f.Ln(2)
}

func (s *service) writeTable(f *gofpdf.Fpdf, page *bill.PrintPage, widths []float64) {
	f.SetFont(fontFamily, "B", fontSize)
	for i, title := range columnTitles {
		f.CellFormat(widths[i], rowHeight, title, "1", 0, "L", false, 0, "")
	}
	f.Ln(-1)

	f.SetFont(fontFamily, "", fontSize)
	for _, row := range page.Rows {
		cells := []string{
			fmt.Sprint(row.Serial),
			fitText(f, row.Item.Description, widths[1]),
			formatNullDecimal(row.Item.Quantity),
			string(row.Item.Unit),
			formatNullDecimal(row.Item.Rate),
			types.FormatAmount(row.Item.Amount),
		}
		for i, cell := range cells {
			f.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		f.Ln(-1)
	}

	labelWidth := 0.0
	for _, w := range widths[:len(widths)-1] {
		labelWidth += w
	}
	f.SetFont(fontFamily, "B", fontSize)
	f.CellFormat(labelWidth, rowHeight, "Total", "1", 0, "L", false, 0, "")
	f.CellFormat(widths[len(widths)-1], rowHeight, types.FormatAmount(page.Subtotal), "1", 1, "L", false, 0, "")
}

func (s *service) writeTotals(f *gofpdf.Fpdf, doc *pdf.PrintDocument, width float64) {
	f.Ln(2)
	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total", doc.Subtotal},
		{"GST", doc.Tax},
		{"Packaging", doc.Packaging},
		{"Grand Total", doc.GrandTotal},
	}
	for _, l := range lines {
		f.SetFont(fontFamily, "B", fontSize+1)
		f.CellFormat(width, rowHeight, fmt.Sprintf("%s: %s", l.label, types.FormatAmount(l.value)), "", 1, "R", false, 0, "")
	}
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// fitText cuts text so that it fits into a cell of the given width
func fitText(f *gofpdf.Fpdf, text string, width float64) string {
	const ellipsis = "..."
	limit := width - 2*f.GetCellMargin()
	if f.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && f.GetStringWidth(string(runes)+ellipsis) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
