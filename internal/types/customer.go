package types

import (
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/samber/lo"
)

// CustomerTitle is the salutation printed before the customer name
type CustomerTitle string

const (
	CustomerTitleMr    CustomerTitle = "Mr"
	CustomerTitleMs    CustomerTitle = "Ms"
	CustomerTitleMrs   CustomerTitle = "Mrs"
	CustomerTitleDr    CustomerTitle = "Dr"
	CustomerTitleProf  CustomerTitle = "Prof"
	CustomerTitleOther CustomerTitle = "Other"
)

func (t CustomerTitle) String() string {
	return string(t)
}

func (t CustomerTitle) Validate() error {
	allowed := []CustomerTitle{
		CustomerTitleMr,
		CustomerTitleMs,
		CustomerTitleMrs,
		CustomerTitleDr,
		CustomerTitleProf,
		CustomerTitleOther,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid customer title").
			WithHintf("Title must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
