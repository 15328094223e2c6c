package service

import (
	"context"

	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/domain/pdf"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
)

type BillService interface {
	ListBills(ctx context.Context) ([]*bill.Bill, error)
	SearchBills(ctx context.Context, filter *types.BillSearchFilter) (*bill.SearchResult, error)
	GetBill(ctx context.Context, id types.RecordID) (*bill.Bill, error)

	// NewDraft starts a create session with one blank row dated today
	NewDraft() *BillDraft
	// OpenForEdit starts an edit session for a saved bill
	OpenForEdit(ctx context.Context, id types.RecordID) (*BillDraft, error)
	// SubmitDraft creates or updates the bill behind draft
	SubmitDraft(ctx context.Context, draft *BillDraft) error

	PrepareBillPrint(ctx context.Context, id types.RecordID) (*pdf.PrintDocument, error)
	RenderBillPdf(ctx context.Context, id types.RecordID) ([]byte, error)
}

type billService struct {
	ServiceParams
	paginator PrintPaginator
}

func NewBillService(params ServiceParams) BillService {
	return &billService{
		ServiceParams: params,
		paginator:     NewPrintPaginator(params.Config),
	}
}

func (s *billService) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	ctx, err := authorize(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}

	bills, err := s.BillRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("listed bills", "count", len(bills))
	return bills, nil
}

// SearchBills returns the bills matching filter and the sum of their grand totals.
// An empty filter is sent as is; the api decides what it matches.
func (s *billService) SearchBills(ctx context.Context, filter *types.BillSearchFilter) (*bill.SearchResult, error) {
	if filter == nil {
		filter = &types.BillSearchFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ctx, err := authorize(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}

	result, err := s.BillRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	result.TotalGrandTotal = types.RoundAmount(result.TotalGrandTotal)

	s.Logger.Debugw("searched bills",
		"customer_name", filter.CustomerName,
		"location", filter.Location,
		"count", len(result.Bills),
		"total_grand_total", result.TotalGrandTotal.String())

	return result, nil
}

func (s *billService) GetBill(ctx context.Context, id types.RecordID) (*bill.Bill, error) {
	if id.IsZero() {
		return nil, ierr.NewError("bill id is required").
			WithHint("Bill ID is required").
			Mark(ierr.ErrValidation)
	}

	ctx, err := authorize(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}
	return s.BillRepo.Get(ctx, id)
}

func (s *billService) NewDraft() *BillDraft {
	return newBlankDraft()
}

func (s *billService) OpenForEdit(ctx context.Context, id types.RecordID) (*BillDraft, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDraftFromBill(b), nil
}

// SubmitDraft validates draft and sends it to the api. A created draft is
// reset to a fresh blank session; an updated draft is reloaded from the api
// so that new rows carry their ids and the deletion set starts empty.
func (s *billService) SubmitDraft(ctx context.Context, draft *BillDraft) error {
	if draft == nil {
		return ierr.NewError("draft is required").
			WithHint("Nothing to save").
			Mark(ierr.ErrValidation)
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	ctx, err := authorize(ctx, s.ServiceParams)
	if err != nil {
		return err
	}

	b, deleted := draft.ToBill()

	if !draft.IsEdit() {
		if err := s.BillRepo.Create(ctx, b); err != nil {
			return err
		}
		s.Logger.Infow("created bill",
			"customer_name", b.Customer.Name,
			"items", len(b.Items),
			"grand_total", b.Detail.GrandTotal.String())
		draft.reset()
		return nil
	}

	if err := s.BillRepo.Update(ctx, b, deleted); err != nil {
		return err
	}
	s.Logger.Infow("updated bill",
		"bill_id", b.Detail.ID,
		"items", len(b.Items),
		"deleted", len(deleted),
		"grand_total", b.Detail.GrandTotal.String())

	fresh, err := s.BillRepo.Get(ctx, b.Detail.ID)
	if err != nil {
		// the update went through; keep editing the local copy
		s.Logger.Warnw("failed to reload updated bill", "bill_id", b.Detail.ID, "error", err)
		draft.Lines.Initialize(b.Items)
		return nil
	}
	draft.load(fresh)
	return nil
}

// PrepareBillPrint lays out a saved bill for printing. Rows print with the
// amounts stored by the api and the footer total is derived from the stored grand total.
func (s *billService) PrepareBillPrint(ctx context.Context, id types.RecordID) (*pdf.PrintDocument, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	pages, err := s.paginator.Paginate(b.Items)
	if err != nil {
		return nil, err
	}

	billNumber := b.Detail.ID
	if billNumber.IsZero() {
		billNumber = id
	}

	return &pdf.PrintDocument{
		Title:        s.Config.Print.Title,
		ShopName:     s.Config.Print.ShopName,
		BillNumber:   billNumber,
		BillingDate:  b.Detail.BillingDate,
		CustomerName: b.Customer.DisplayName(),
		Location:     b.Customer.Location,
		PageSize:     s.Config.Print.PageSize,
		Pages:        pages,
		Subtotal:     b.Detail.Subtotal(),
		Tax:          b.Detail.Tax,
		Packaging:    b.Detail.Packaging,
		GrandTotal:   b.Detail.GrandTotal,
	}, nil
}

func (s *billService) RenderBillPdf(ctx context.Context, id types.RecordID) ([]byte, error) {
	doc, err := s.PrepareBillPrint(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.PDFGenerator.RenderBillPdf(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("rendered bill",
		"bill_id", id,
		"pages", len(doc.Pages),
		"bytes", len(out))
	return out, nil
}
