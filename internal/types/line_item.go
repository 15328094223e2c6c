package types

import (
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/samber/lo"
)

// LineItemUnit is the sale unit printed next to a line item quantity.
// It is informational and does not take part in any arithmetic.
type LineItemUnit string

const (
	LineItemUnitPiece LineItemUnit = "piece"
	LineItemUnitDozen LineItemUnit = "dozen"

	// DefaultLineItemUnit is applied to every freshly added row
	DefaultLineItemUnit = LineItemUnitPiece
)

func (u LineItemUnit) String() string {
	return string(u)
}

func (u LineItemUnit) Validate() error {
	allowed := []LineItemUnit{
		LineItemUnitPiece,
		LineItemUnitDozen,
	}
	if !lo.Contains(allowed, u) {
		return ierr.NewError("invalid line item unit").
			WithHintf("Unit must be one of %v", allowed).
			WithReportableDetails(map[string]any{
				"unit":    u,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LineItemField names an operator editable field of a line item.
// The amount is derived and therefore has no field.
type LineItemField string

const (
	LineItemFieldDescription LineItemField = "description"
	LineItemFieldQuantity    LineItemField = "quantity"
	LineItemFieldUnit        LineItemField = "unit"
	LineItemFieldRate        LineItemField = "rate"
)

func (f LineItemField) String() string {
	return string(f)
}

// AffectsAmount reports whether a change to the field requires the line amount to be recomputed
func (f LineItemField) AffectsAmount() bool {
	return f == LineItemFieldQuantity || f == LineItemFieldRate
}

func (f LineItemField) Validate() error {
	allowed := []LineItemField{
		LineItemFieldDescription,
		LineItemFieldQuantity,
		LineItemFieldUnit,
		LineItemFieldRate,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid line item field").
			WithHintf("Field must be one of %v", allowed).
			Mark(ierr.ErrInvalidArgument)
	}
	return nil
}
