package bill

import (
	"context"

	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
)

// SearchResult is a filtered bill listing together with the sum of their grand totals
type SearchResult struct {
	Bills           []*Bill
	TotalGrandTotal decimal.Decimal
}

// Repository defines the interface for bill persistence operations
type Repository interface {
	// List retrieves every bill
	List(ctx context.Context) ([]*Bill, error)

	// Get retrieves a bill by ID
	Get(ctx context.Context, id types.RecordID) (*Bill, error)

	// Create stores a new bill
	Create(ctx context.Context, b *Bill) error

	// Update replaces an existing bill; deleted lists the persisted rows removed while editing
	Update(ctx context.Context, b *Bill, deleted []types.RecordID) error

	// Search retrieves the bills matching filter
	Search(ctx context.Context, filter *types.BillSearchFilter) (*SearchResult, error)
}
