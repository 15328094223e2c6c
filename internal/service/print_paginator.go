package service

import (
	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Paginate splits items, in order, into pages of at most pageCapacity rows.
// Serial numbers restart on every page or run across pages depending on mode,
// and every page carries the subtotal of its own rows. No items yields no pages.
func Paginate(items []*bill.LineItem, pageCapacity int, mode types.SerialMode) ([]*bill.PrintPage, error) {
	if pageCapacity <= 0 {
		return nil, ierr.NewErrorf("page capacity must be positive, got %d", pageCapacity).
			WithHint("Page capacity must be at least 1").
			Mark(ierr.ErrInvalidArgument)
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	items = lo.Filter(items, func(item *bill.LineItem, _ int) bool {
		return item != nil
	})

	chunks := lo.Chunk(items, pageCapacity)
	pages := make([]*bill.PrintPage, 0, len(chunks))

	serial := 0
	for i, chunk := range chunks {
		if mode == types.SerialModePerPage {
			serial = 0
		}

		page := &bill.PrintPage{
			Number:   i + 1,
			Rows:     make([]bill.PrintRow, 0, len(chunk)),
			Subtotal: decimal.Zero,
		}
		for _, item := range chunk {
			serial++
			page.Rows = append(page.Rows, bill.PrintRow{
				Serial: serial,
				Item:   *item,
			})
			page.Subtotal = page.Subtotal.Add(item.Amount)
		}
		page.Subtotal = types.RoundAmount(page.Subtotal)

		pages = append(pages, page)
	}

	return pages, nil
}

// PrintPaginator applies the configured page capacity and serial mode
type PrintPaginator struct {
	PageCapacity int
	SerialMode   types.SerialMode
}

func NewPrintPaginator(cfg *config.Configuration) PrintPaginator {
	return PrintPaginator{
		PageCapacity: cfg.Print.PageCapacity,
		SerialMode:   cfg.Print.SerialMode,
	}
}

// Paginate splits items using the configured capacity and serial mode
func (p PrintPaginator) Paginate(items []*bill.LineItem) ([]*bill.PrintPage, error) {
	return Paginate(items, p.PageCapacity, p.SerialMode)
}
