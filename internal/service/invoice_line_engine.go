package service

import (
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLineEngine owns the rows of one create or edit session and keeps the
// bill totals consistent with them. Every mutation re-derives the totals from
// scratch. A rejected mutation leaves the engine untouched.
//
// An engine belongs to a single editing context and is not safe for concurrent use.
type InvoiceLineEngine struct {
	items     []*bill.LineItem
	deleted   *bill.DeletionSet
	tax       decimal.Decimal
	packaging decimal.Decimal
	aggregate bill.Aggregate
}

// NewInvoiceLineEngine returns an engine holding a single blank row
func NewInvoiceLineEngine() *InvoiceLineEngine {
	e := &InvoiceLineEngine{}
	e.InitializeNew()
	return e
}

// Initialize loads items in order, resets the deletion set and re-derives every amount.
// The engine keeps its own copies; later changes to items do not leak in.
func (e *InvoiceLineEngine) Initialize(items []*bill.LineItem) {
	e.items = make([]*bill.LineItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		c := item.Copy()
		if c.Unit == "" {
			c.Unit = types.DefaultLineItemUnit
		}
		c.Recalculate()
		e.items = append(e.items, c)
	}
	e.deleted = bill.NewDeletionSet()
	e.recompute()
}

// InitializeNew starts a new bill with one blank row and no tax or packaging
func (e *InvoiceLineEngine) InitializeNew() {
	e.tax = decimal.Zero
	e.packaging = decimal.Zero
	e.Initialize([]*bill.LineItem{bill.NewBlankLineItem()})
}

// Load starts an edit session for a persisted bill
func (e *InvoiceLineEngine) Load(b *bill.Bill) {
	e.tax = b.Detail.Tax
	e.packaging = b.Detail.Packaging
	e.Initialize(b.Items)
}

// Len returns the number of rows
func (e *InvoiceLineEngine) Len() int {
	return len(e.items)
}

// Item returns a copy of the row at index
func (e *InvoiceLineEngine) Item(index int) (*bill.LineItem, error) {
	if err := e.checkIndex(index); err != nil {
		return nil, err
	}
	return e.items[index].Copy(), nil
}

// AddItem appends a blank row and returns its index
func (e *InvoiceLineEngine) AddItem() int {
	e.items = append(e.items, bill.NewBlankLineItem())
	e.recompute()
	return len(e.items) - 1
}

// RemoveItem drops the row at index. The last remaining row cannot be removed.
// Removing a persisted row records its id for deletion.
func (e *InvoiceLineEngine) RemoveItem(index int) error {
	if len(e.items) <= 1 {
		return ierr.NewError("cannot remove the last line item").
			WithHint("A bill needs at least one line item").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := e.checkIndex(index); err != nil {
		return err
	}

	removed := e.items[index]
	if removed.IsPersisted() {
		e.deleted.Add(removed.ID)
	}

	items := make([]*bill.LineItem, 0, len(e.items)-1)
	items = append(items, e.items[:index]...)
	items = append(items, e.items[index+1:]...)
	e.items = items

	e.recompute()
	return nil
}

// UpdateItemField sets one editable field of the row at index from operator input.
// Quantity and rate that do not parse as numbers count as zero.
func (e *InvoiceLineEngine) UpdateItemField(index int, field types.LineItemField, value string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if err := field.Validate(); err != nil {
		return err
	}

	item := e.items[index]
	switch field {
	case types.LineItemFieldDescription:
		item.Description = value
	case types.LineItemFieldQuantity:
		item.Quantity = types.ParseNullAmount(value)
	case types.LineItemFieldRate:
		item.Rate = types.ParseNullAmount(value)
	case types.LineItemFieldUnit:
		unit := types.LineItemUnit(value)
		if err := unit.Validate(); err != nil {
			return ierr.WithError(err).
				WithHintf("Unknown unit %q", value).
				Mark(ierr.ErrInvalidArgument)
		}
		item.Unit = unit
	}

	if field.AffectsAmount() {
		item.Recalculate()
	}
	e.recompute()
	return nil
}

// SetTax sets the flat tax amount; input that is not a number counts as zero
func (e *InvoiceLineEngine) SetTax(value string) {
	e.tax = types.ParseAmount(value)
	e.recompute()
}

// SetPackaging sets the flat packaging charge; input that is not a number counts as zero
func (e *InvoiceLineEngine) SetPackaging(value string) {
	e.packaging = types.ParseAmount(value)
	e.recompute()
}

// CurrentAggregate returns the totals for the current rows
func (e *InvoiceLineEngine) CurrentAggregate() bill.Aggregate {
	return e.aggregate
}

// DeletedIDs returns the persisted rows removed in this session
func (e *InvoiceLineEngine) DeletedIDs() []types.RecordID {
	return e.deleted.IDs()
}

// Snapshot returns copies of the rows, the deletion set and the totals,
// ready to be submitted to the billing api
func (e *InvoiceLineEngine) Snapshot() *bill.Snapshot {
	return &bill.Snapshot{
		Items:     bill.CopyItems(e.items),
		Deleted:   e.deleted.IDs(),
		Aggregate: e.aggregate,
	}
}

func (e *InvoiceLineEngine) recompute() {
	e.aggregate = bill.NewAggregate(e.items, e.tax, e.packaging)
}

func (e *InvoiceLineEngine) checkIndex(index int) error {
	if index < 0 || index >= len(e.items) {
		return ierr.NewErrorf("line item index %d out of range", index).
			WithHintf("Line item %d does not exist", index+1).
			WithReportableDetails(map[string]any{
				"index": index,
				"count": len(e.items),
			}).
			Mark(ierr.ErrInvalidArgument)
	}
	return nil
}
