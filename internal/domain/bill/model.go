package bill

import (
	"fmt"

	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Customer is the party a bill is issued to
type Customer struct {
	Title    types.CustomerTitle `json:"title"`
	Name     string              `json:"name"`
	Location string              `json:"location"`
}

// DisplayName renders the name the way it is printed on the challan, e.g. "Mr. Rahul Shah"
func (c Customer) DisplayName() string {
	if c.Title == "" {
		return c.Name
	}
	return fmt.Sprintf("%s. %s", c.Title, c.Name)
}

// Detail carries the bill header and the totals stored by the billing api
type Detail struct {
	ID          types.RecordID  `json:"id,omitempty"`
	BillingDate types.Date      `json:"billing_date"`
	Total       decimal.Decimal `json:"total"`
	Tax         decimal.Decimal `json:"tax"`
	Packaging   decimal.Decimal `json:"packaging"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Subtotal returns the pre tax total as implied by the stored grand total
func (d Detail) Subtotal() decimal.Decimal {
	return types.RoundAmount(d.GrandTotal.Sub(d.Tax).Sub(d.Packaging))
}

// Bill represents a saved or about to be saved bill
type Bill struct {
	Customer Customer    `json:"customer"`
	Detail   Detail      `json:"billing_detail"`
	Items    []*LineItem `json:"billings"`
}

// ApplyAggregate copies derived totals into the detail
func (b *Bill) ApplyAggregate(agg Aggregate) {
	b.Detail.Total = agg.Subtotal
	b.Detail.Tax = agg.Tax
	b.Detail.Packaging = agg.Packaging
	b.Detail.GrandTotal = agg.GrandTotal
}
