package bill

import "github.com/shopspring/decimal"

// PrintRow is one line item as laid out on a printed page
type PrintRow struct {
	Serial int      `json:"sr"`
	Item   LineItem `json:"item"`
}

// PrintPage is a capacity bounded slice of line items with its own subtotal.
// The subtotal covers this page only, not the pages before it.
type PrintPage struct {
	Number   int             `json:"number"`
	Rows     []PrintRow      `json:"rows"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
