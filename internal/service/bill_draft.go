package service

import (
	"strings"

	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
)

// BillDraft is one create or edit session: the bill header plus the engine
// holding its rows. A draft with an ID edits that bill, otherwise it creates one.
type BillDraft struct {
	ID          types.RecordID
	Customer    bill.Customer
	BillingDate types.Date
	Lines       *InvoiceLineEngine
}

func newBlankDraft() *BillDraft {
	return &BillDraft{
		BillingDate: types.Today(),
		Lines:       NewInvoiceLineEngine(),
	}
}

func newDraftFromBill(b *bill.Bill) *BillDraft {
	d := &BillDraft{Lines: NewInvoiceLineEngine()}
	d.load(b)
	return d
}

func (d *BillDraft) load(b *bill.Bill) {
	d.ID = b.Detail.ID
	d.Customer = b.Customer
	d.BillingDate = b.Detail.BillingDate
	d.Lines.Load(b)
}

func (d *BillDraft) reset() {
	*d = *newBlankDraft()
}

// IsEdit reports whether the draft edits a saved bill
func (d *BillDraft) IsEdit() bool {
	return !d.ID.IsZero()
}

// Validate checks the header and every row before anything is sent
func (d *BillDraft) Validate() error {
	if err := d.Customer.Title.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Customer.Name) == "" {
		return ierr.NewError("customer name is required").
			WithHint("Please enter the customer name").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(d.Customer.Location) == "" {
		return ierr.NewError("location is required").
			WithHint("Please enter the location").
			Mark(ierr.ErrValidation)
	}
	if d.BillingDate.IsZero() {
		return ierr.NewError("billing date is required").
			WithHint("Please select the billing date").
			Mark(ierr.ErrValidation)
	}

	for i := 0; i < d.Lines.Len(); i++ {
		item, err := d.Lines.Item(i)
		if err != nil {
			return err
		}
		if err := item.Validate(); err != nil {
			return ierr.WithError(err).
				WithReportableDetails(map[string]any{"line": i + 1}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToBill returns the bill to submit together with the rows removed while editing
func (d *BillDraft) ToBill() (*bill.Bill, []types.RecordID) {
	snap := d.Lines.Snapshot()
	b := &bill.Bill{
		Customer: bill.Customer{
			Title:    d.Customer.Title,
			Name:     strings.TrimSpace(d.Customer.Name),
			Location: strings.TrimSpace(d.Customer.Location),
		},
		Detail: bill.Detail{
			ID:          d.ID,
			BillingDate: d.BillingDate,
		},
		Items: snap.Items,
	}
	b.ApplyAggregate(snap.Aggregate)
	return b, snap.Deleted
}
