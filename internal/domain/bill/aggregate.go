package bill

import (
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Aggregate holds the whole-bill totals derived from the line items
type Aggregate struct {
	Subtotal   decimal.Decimal `json:"total"`
	Tax        decimal.Decimal `json:"total_tax"`
	Packaging  decimal.Decimal `json:"packing"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewAggregate sums the item amounts from scratch and derives the grand total.
// Tax and packaging are flat amounts, not rates.
func NewAggregate(items []*LineItem, tax, packaging decimal.Decimal) Aggregate {
	sum := decimal.Zero
	for _, item := range items {
		if item == nil {
			continue
		}
		sum = sum.Add(item.Amount)
	}

	subtotal := types.RoundAmount(sum)
	return Aggregate{
		Subtotal:   subtotal,
		Tax:        tax,
		Packaging:  packaging,
		GrandTotal: types.RoundAmount(subtotal.Add(tax).Add(packaging)),
	}
}
