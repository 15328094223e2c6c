package bill

import (
	"strings"

	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem represents a single row of a bill
type LineItem struct {
	// ID is set only for rows that already exist in the billing api
	ID          types.RecordID      `json:"id,omitempty"`
	Description string              `json:"description"`
	Quantity    decimal.NullDecimal `json:"qty"`
	Unit        types.LineItemUnit  `json:"unit"`
	Rate        decimal.NullDecimal `json:"rate"`
	// Amount is always round(quantity * rate, 2); use Recalculate after changing either input
	Amount decimal.Decimal `json:"amount"`
}

// NewBlankLineItem returns an empty row with the default unit
func NewBlankLineItem() *LineItem {
	return &LineItem{
		Unit:   types.DefaultLineItemUnit,
		Amount: decimal.Zero,
	}
}

// IsPersisted reports whether the row exists in the billing api
func (li *LineItem) IsPersisted() bool {
	return !li.ID.IsZero()
}

// QuantityOrZero returns the quantity, treating an unset value as zero
func (li *LineItem) QuantityOrZero() decimal.Decimal {
	if !li.Quantity.Valid {
		return decimal.Zero
	}
	return li.Quantity.Decimal
}

// RateOrZero returns the rate, treating an unset value as zero
func (li *LineItem) RateOrZero() decimal.Decimal {
	if !li.Rate.Valid {
		return decimal.Zero
	}
	return li.Rate.Decimal
}

// Recalculate derives Amount from the current quantity and rate
func (li *LineItem) Recalculate() {
	li.Amount = CalculateAmount(li.QuantityOrZero(), li.RateOrZero())
}

// Copy returns a deep copy of the row
func (li *LineItem) Copy() *LineItem {
	if li == nil {
		return nil
	}
	c := *li
	return &c
}

// Validate checks that the row is complete enough to be submitted
func (li *LineItem) Validate() error {
	if strings.TrimSpace(li.Description) == "" {
		return ierr.NewError("line item validation failed").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}

	if !li.Quantity.Valid || !li.Quantity.Decimal.IsPositive() {
		return ierr.NewError("line item validation failed").
			WithHint("Quantity must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if !li.Rate.Valid || li.Rate.Decimal.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("Rate must be zero or more").
			Mark(ierr.ErrValidation)
	}

	return li.Unit.Validate()
}

// CalculateAmount returns quantity * rate rounded to two decimal places
func CalculateAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return types.RoundAmount(quantity.Mul(rate))
}
