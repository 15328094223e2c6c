package types

import (
	"strings"

	ierr "github.com/mjfashion/billdesk/internal/errors"
)

// BillSearchFilter narrows the bill listing.
// Every criterion is optional; an unset criterion matches every bill.
type BillSearchFilter struct {
	CustomerName string `json:"customer_name,omitempty"`
	Location     string `json:"location,omitempty"`
	StartDate    *Date  `json:"start_date,omitempty"`
	EndDate      *Date  `json:"end_date,omitempty"`
}

// IsEmpty reports whether no criterion is set
func (f *BillSearchFilter) IsEmpty() bool {
	return strings.TrimSpace(f.CustomerName) == "" &&
		strings.TrimSpace(f.Location) == "" &&
		f.StartDate == nil &&
		f.EndDate == nil
}

func (f *BillSearchFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(f.StartDate.Time) {
		return ierr.NewError("end_date must be on or after start_date").
			WithHint("End date must be on or after start date").
			WithReportableDetails(map[string]any{
				"start_date": f.StartDate.String(),
				"end_date":   f.EndDate.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
