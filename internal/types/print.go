package types

import (
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/samber/lo"
)

// DefaultPrintPageCapacity is the number of line items laid out on one printed page
const DefaultPrintPageCapacity = 20

// SerialMode controls how the SR column is numbered across printed pages
type SerialMode string

const (
	// SerialModePerPage restarts the serial number at 1 on every page
	SerialModePerPage SerialMode = "per_page"
	// SerialModeContinuous keeps counting across pages
	SerialModeContinuous SerialMode = "continuous"
)

func (m SerialMode) String() string {
	return string(m)
}

func (m SerialMode) Validate() error {
	allowed := []SerialMode{
		SerialModePerPage,
		SerialModeContinuous,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid serial mode").
			WithHintf("Serial mode must be one of %v", allowed).
			Mark(ierr.ErrInvalidArgument)
	}
	return nil
}

// PageSize is a paper size understood by the pdf renderer
type PageSize string

const (
	PageSizeA4 PageSize = "A4"
	PageSizeA5 PageSize = "A5"
)

func (p PageSize) Validate() error {
	allowed := []PageSize{PageSizeA4, PageSizeA5}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid page size").
			WithHintf("Page size must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
