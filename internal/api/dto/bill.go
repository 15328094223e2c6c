package dto

import (
	"strings"

	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/mjfashion/billdesk/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// BillItemRequest is one line item as sent to create-billing and update-bill
type BillItemRequest struct {
	// id is set for rows that already exist and omitted for new rows
	ID          types.RecordID     `json:"id,omitempty"`
	Description string             `json:"description" validate:"required"`
	Qty         decimal.Decimal    `json:"qty"`
	Unit        types.LineItemUnit `json:"unit" validate:"required"`
	Rate        decimal.Decimal    `json:"rate"`
	Amount      decimal.Decimal    `json:"amount"`
}

// CreateBillRequest is the body of create-billing
type CreateBillRequest struct {
	Title        types.CustomerTitle `json:"title" validate:"required"`
	CustomerName string              `json:"customer_name" validate:"required"`
	Location     string              `json:"location" validate:"required"`
	BillingDate  types.Date          `json:"billing_date"`
	Items        []BillItemRequest   `json:"items" validate:"required,min=1,dive"`

	// gst and packing are flat amounts
	GST        decimal.Decimal `json:"gst"`
	Packing    decimal.Decimal `json:"packing"`
	Total      decimal.Decimal `json:"total"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// UpdateBillRequest is the body of update-bill/{id}
type UpdateBillRequest struct {
	CreateBillRequest
	// billing_to_delete lists the persisted rows removed while editing
	BillingToDelete []types.RecordID `json:"billing_to_delete"`
}

// NewCreateBillRequest builds the request body from a bill whose totals are already derived
func NewCreateBillRequest(b *bill.Bill) *CreateBillRequest {
	return &CreateBillRequest{
		Title:        b.Customer.Title,
		CustomerName: strings.TrimSpace(b.Customer.Name),
		Location:     strings.TrimSpace(b.Customer.Location),
		BillingDate:  b.Detail.BillingDate,
		Items: lo.FilterMap(b.Items, func(item *bill.LineItem, _ int) (BillItemRequest, bool) {
			if item == nil {
				return BillItemRequest{}, false
			}
			return BillItemRequest{
				ID:          item.ID,
				Description: strings.TrimSpace(item.Description),
				Qty:         item.QuantityOrZero(),
				Unit:        item.Unit,
				Rate:        item.RateOrZero(),
				Amount:      item.Amount,
			}, true
		}),
		GST:        b.Detail.Tax,
		Packing:    b.Detail.Packaging,
		Total:      b.Detail.Total,
		TotalTax:   b.Detail.Tax,
		GrandTotal: b.Detail.GrandTotal,
	}
}

// NewUpdateBillRequest builds the update body; deleted is always sent, empty when nothing was removed
func NewUpdateBillRequest(b *bill.Bill, deleted []types.RecordID) *UpdateBillRequest {
	if deleted == nil {
		deleted = []types.RecordID{}
	}
	return &UpdateBillRequest{
		CreateBillRequest: *NewCreateBillRequest(b),
		BillingToDelete:   deleted,
	}
}

func (r *CreateBillRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.Title.Validate(); err != nil {
		return err
	}

	if r.BillingDate.IsZero() {
		return ierr.NewError("billing_date is required").
			WithHint("Billing date is required").
			Mark(ierr.ErrValidation)
	}

	for i, item := range r.Items {
		if err := item.Validate(); err != nil {
			return ierr.WithError(err).
				WithHintf("Line item %d is incomplete", i+1).
				WithReportableDetails(map[string]any{"index": i}).
				Mark(ierr.ErrValidation)
		}
	}

	if !r.GrandTotal.Equal(types.RoundAmount(r.Total.Add(r.TotalTax).Add(r.Packing))) {
		return ierr.NewError("grand_total does not match its parts").
			WithHint("Grand total must equal total plus GST plus packaging").
			WithReportableDetails(map[string]any{
				"total":       r.Total.String(),
				"total_tax":   r.TotalTax.String(),
				"packing":     r.Packing.String(),
				"grand_total": r.GrandTotal.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r *BillItemRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ierr.NewError("description is required").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}
	if !r.Qty.IsPositive() {
		return ierr.NewError("qty must be positive").
			WithHint("Quantity must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.Rate.IsNegative() {
		return ierr.NewError("rate must not be negative").
			WithHint("Rate must be zero or more").
			Mark(ierr.ErrValidation)
	}
	return r.Unit.Validate()
}

// BillResponse is a bill as returned by get-bill, get-bills and search-bill
type BillResponse struct {
	*bill.Bill `json:",inline"`
}

// ListBillsResponse is the body returned by get-bills
type ListBillsResponse struct {
	Bills []*BillResponse `json:"bills"`
}

// ToBills drops empty entries and returns the wrapped bills
func ToBills(items []*BillResponse) []*bill.Bill {
	return lo.FilterMap(items, func(r *BillResponse, _ int) (*bill.Bill, bool) {
		if r == nil || r.Bill == nil {
			return nil, false
		}
		return r.Bill, true
	})
}

// SearchBillsRequest is the body of search-bill
type SearchBillsRequest struct {
	CustomerName string      `json:"customer_name,omitempty"`
	Location     string      `json:"location,omitempty"`
	StartDate    *types.Date `json:"start_date,omitempty"`
	EndDate      *types.Date `json:"end_date,omitempty"`
}

func NewSearchBillsRequest(filter *types.BillSearchFilter) *SearchBillsRequest {
	return &SearchBillsRequest{
		CustomerName: strings.TrimSpace(filter.CustomerName),
		Location:     strings.TrimSpace(filter.Location),
		StartDate:    filter.StartDate,
		EndDate:      filter.EndDate,
	}
}

// SearchBillsResponse is the body returned by search-bill.
// When nothing matches the api answers with error set instead of bills.
type SearchBillsResponse struct {
	Bills           []*BillResponse     `json:"bills"`
	TotalGrandTotal decimal.NullDecimal `json:"totalGrandTotal"`
	Error           string              `json:"error,omitempty"`
}
