package rest

import (
	"context"
	"net/http"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/httpclient"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

const (
	pathListBills  = "get-bills"
	pathGetBill    = "get-bill/"
	pathCreateBill = "create-billing"
	pathUpdateBill = "update-bill/"
	pathSearchBill = "search-bill"
)

type billRepository struct {
	api    *apiClient
	logger *logger.Logger
}

func NewBillRepository(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) bill.Repository {
	return &billRepository{
		api:    newAPIClient(cfg, client, log),
		logger: log,
	}
}

func (r *billRepository) List(ctx context.Context) ([]*bill.Bill, error) {
	var resp dto.ListBillsResponse
	if err := r.api.call(ctx, http.MethodGet, pathListBills, true, nil, &resp); err != nil {
		return nil, err
	}
	return dto.ToBills(resp.Bills), nil
}

func (r *billRepository) Get(ctx context.Context, id types.RecordID) (*bill.Bill, error) {
	if id.IsZero() {
		return nil, ierr.NewError("bill id is required").
			WithHint("Bill ID is required").
			Mark(ierr.ErrValidation)
	}

	var resp dto.BillResponse
	if err := r.api.call(ctx, http.MethodGet, pathGetBill+id.String(), true, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Bill == nil {
		return nil, ierr.NewErrorf("bill %s not found", id).
			WithHintf("Bill #%s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	if resp.Detail.ID.IsZero() {
		resp.Detail.ID = id
	}
	return resp.Bill, nil
}

func (r *billRepository) Create(ctx context.Context, b *bill.Bill) error {
	req := dto.NewCreateBillRequest(b)
	if err := req.Validate(); err != nil {
		return err
	}

	r.logger.Debugw("creating bill",
		"customer_name", req.CustomerName,
		"items", len(req.Items),
		"grand_total", req.GrandTotal.String())

	return r.api.call(ctx, http.MethodPost, pathCreateBill, true, req, nil)
}

func (r *billRepository) Update(ctx context.Context, b *bill.Bill, deleted []types.RecordID) error {
	if b.Detail.ID.IsZero() {
		return ierr.NewError("bill id is required").
			WithHint("Only saved bills can be updated").
			Mark(ierr.ErrValidation)
	}

	req := dto.NewUpdateBillRequest(b, deleted)
	if err := req.Validate(); err != nil {
		return err
	}

	r.logger.Debugw("updating bill",
		"bill_id", b.Detail.ID,
		"items", len(req.Items),
		"deleted", len(req.BillingToDelete),
		"grand_total", req.GrandTotal.String())

	return r.api.call(ctx, http.MethodPut, pathUpdateBill+b.Detail.ID.String(), true, req, nil)
}

func (r *billRepository) Search(ctx context.Context, filter *types.BillSearchFilter) (*bill.SearchResult, error) {
	if filter == nil {
		filter = &types.BillSearchFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp dto.SearchBillsResponse
	if err := r.api.call(ctx, http.MethodPost, pathSearchBill, true, dto.NewSearchBillsRequest(filter), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, ierr.NewError("no bills matched the search").
			WithHint(resp.Error).
			Mark(ierr.ErrNotFound)
	}

	total := decimal.Zero
	if resp.TotalGrandTotal.Valid {
		total = resp.TotalGrandTotal.Decimal
	}
	return &bill.SearchResult{
		Bills:           dto.ToBills(resp.Bills),
		TotalGrandTotal: types.RoundAmount(total),
	}, nil
}
