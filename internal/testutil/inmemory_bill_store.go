package testutil

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryBillStore implements bill.Repository the way the billing api behaves:
// it issues numeric ids for bills and rows and answers an empty search with not found
type InMemoryBillStore struct {
	*InMemoryStore[*bill.Bill]

	mu          sync.Mutex
	nextBillID  int
	nextItemID  int
	lastDeleted []types.RecordID
	updates     int
}

func NewInMemoryBillStore() *InMemoryBillStore {
	return &InMemoryBillStore{
		InMemoryStore: NewInMemoryStore[*bill.Bill](),
	}
}

func (s *InMemoryBillStore) List(ctx context.Context) ([]*bill.Bill, error) {
	bills, err := s.InMemoryStore.List(ctx, nil, nil, sortByID)
	if err != nil {
		return nil, err
	}
	return lo.Map(bills, func(b *bill.Bill, _ int) *bill.Bill { return copyBill(b) }), nil
}

func (s *InMemoryBillStore) Get(ctx context.Context, id types.RecordID) (*bill.Bill, error) {
	b, err := s.InMemoryStore.Get(ctx, id.String())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Bill #%s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	return copyBill(b), nil
}

// Create stores a copy of b and assigns ids; b itself is left untouched
func (s *InMemoryBillStore) Create(ctx context.Context, b *bill.Bill) error {
	if err := dto.NewCreateBillRequest(b).Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyBill(b)
	s.nextBillID++
	stored.Detail.ID = types.RecordID(strconv.Itoa(s.nextBillID))
	s.assignItemIDs(stored)

	return s.InMemoryStore.Create(ctx, stored.Detail.ID.String(), stored)
}

func (s *InMemoryBillStore) Update(ctx context.Context, b *bill.Bill, deleted []types.RecordID) error {
	if err := dto.NewUpdateBillRequest(b, deleted).Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.InMemoryStore.Get(ctx, b.Detail.ID.String()); err != nil {
		return ierr.WithError(err).
			WithHintf("Bill #%s does not exist", b.Detail.ID).
			Mark(ierr.ErrNotFound)
	}

	stored := copyBill(b)
	stored.Items = lo.Reject(stored.Items, func(item *bill.LineItem, _ int) bool {
		return lo.Contains(deleted, item.ID)
	})
	s.assignItemIDs(stored)

	s.lastDeleted = append([]types.RecordID{}, deleted...)
	s.updates++
	return s.InMemoryStore.Update(ctx, stored.Detail.ID.String(), stored)
}

func (s *InMemoryBillStore) Search(ctx context.Context, filter *types.BillSearchFilter) (*bill.SearchResult, error) {
	if filter == nil {
		filter = &types.BillSearchFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	bills, err := s.InMemoryStore.List(ctx, filter, matchesSearch, sortByID)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, ierr.NewError("no bills matched the search").
			WithHint("No bills found").
			Mark(ierr.ErrNotFound)
	}

	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.Detail.GrandTotal)
	}
	return &bill.SearchResult{
		Bills:           lo.Map(bills, func(b *bill.Bill, _ int) *bill.Bill { return copyBill(b) }),
		TotalGrandTotal: types.RoundAmount(total),
	}, nil
}

// LastDeleted returns the ids sent with the most recent update
func (s *InMemoryBillStore) LastDeleted() []types.RecordID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDeleted
}

// Updates returns the number of successful updates
func (s *InMemoryBillStore) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// Seed stores b as is, keeping its ids
func (s *InMemoryBillStore) Seed(ctx context.Context, b *bill.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyBill(b)
	if n, err := strconv.Atoi(stored.Detail.ID.String()); err == nil && n > s.nextBillID {
		s.nextBillID = n
	}
	for _, item := range stored.Items {
		if n, err := strconv.Atoi(item.ID.String()); err == nil && n > s.nextItemID {
			s.nextItemID = n
		}
	}
	return s.InMemoryStore.Create(ctx, stored.Detail.ID.String(), stored)
}

func (s *InMemoryBillStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InMemoryStore.Clear()
	s.nextBillID = 0
	s.nextItemID = 0
	s.lastDeleted = nil
	s.updates = 0
}

func (s *InMemoryBillStore) assignItemIDs(b *bill.Bill) {
	for _, item := range b.Items {
		if item.ID.IsZero() {
			s.nextItemID++
			item.ID = types.RecordID(strconv.Itoa(s.nextItemID))
		}
	}
}

func matchesSearch(_ context.Context, b *bill.Bill, filter interface{}) bool {
	f, ok := filter.(*types.BillSearchFilter)
	if !ok || f == nil {
		return true
	}
	if name := strings.TrimSpace(f.CustomerName); name != "" &&
		!strings.Contains(strings.ToLower(b.Customer.Name), strings.ToLower(name)) {
		return false
	}
	if location := strings.TrimSpace(f.Location); location != "" &&
		!strings.Contains(strings.ToLower(b.Customer.Location), strings.ToLower(location)) {
		return false
	}
	if f.StartDate != nil && b.Detail.BillingDate.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && b.Detail.BillingDate.After(f.EndDate.Time) {
		return false
	}
	return true
}

func sortByID(a, b *bill.Bill) bool {
	x, _ := strconv.Atoi(a.Detail.ID.String())
	y, _ := strconv.Atoi(b.Detail.ID.String())
	return x < y
}

func copyBill(b *bill.Bill) *bill.Bill {
	c := *b
	c.Items = bill.CopyItems(b.Items)
	return &c
}
