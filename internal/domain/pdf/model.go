package pdf

import (
	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// PrintDocument is everything the renderer needs to print one bill
type PrintDocument struct {
	Title        string            `json:"title"`
	ShopName     string            `json:"shop_name"`
	BillNumber   types.RecordID    `json:"bill_number"`
	BillingDate  types.Date        `json:"billing_date"`
	CustomerName string            `json:"customer_name"`
	Location     string            `json:"location"`
	PageSize     types.PageSize    `json:"page_size"`
	Pages        []*bill.PrintPage `json:"pages"`

	// totals printed once after the last page
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Packaging  decimal.Decimal `json:"packaging"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// RowCount returns the number of line items across all pages
func (d *PrintDocument) RowCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Rows)
	}
	return n
}
