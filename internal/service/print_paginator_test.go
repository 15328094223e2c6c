package service

import (
	"fmt"
	"testing"

	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeItems returns n rows where row i (1-based) has quantity 1 and rate i
func makeItems(n int) []*bill.LineItem {
	items := make([]*bill.LineItem, n)
	for i := range items {
		item := bill.NewBlankLineItem()
		item.ID = types.RecordID(fmt.Sprint(i + 1))
		item.Description = fmt.Sprintf("Item %d", i+1)
		item.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(1))
		item.Rate = decimal.NewNullDecimal(decimal.NewFromInt(int64(i + 1)))
		item.Recalculate()
		items[i] = item
	}
	return items
}

func pageSizes(pages []*bill.PrintPage) []int {
	return lo.Map(pages, func(p *bill.PrintPage, _ int) int { return len(p.Rows) })
}

func TestPaginate_PageSizes(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		capacity int
		want     []int
	}{
		{name: "empty", items: 0, capacity: 20, want: []int{}},
		{name: "single item", items: 1, capacity: 20, want: []int{1}},
		{name: "exactly one page", items: 20, capacity: 20, want: []int{20}},
		{name: "one over", items: 21, capacity: 20, want: []int{20, 1}},
		{name: "forty five", items: 45, capacity: 20, want: []int{20, 20, 5}},
		{name: "capacity one", items: 3, capacity: 1, want: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		for _, mode := range []types.SerialMode{types.SerialModePerPage, types.SerialModeContinuous} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				pages, err := Paginate(makeItems(tt.items), tt.capacity, mode)
				require.NoError(t, err)
				assert.Equal(t, tt.want, pageSizes(pages))
				for i, p := range pages {
					assert.Equal(t, i+1, p.Number)
				}
			})
		}
	}
}

func TestPaginate_PerPageSerials(t *testing.T) {
	pages, err := Paginate(makeItems(45), 20, types.SerialModePerPage)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for _, p := range pages {
		assert.Equal(t, 1, p.Rows[0].Serial)
		assert.Equal(t, len(p.Rows), p.Rows[len(p.Rows)-1].Serial)
	}
}

func TestPaginate_ContinuousSerials(t *testing.T) {
	pages, err := Paginate(makeItems(45), 20, types.SerialModeContinuous)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, 1, pages[0].Rows[0].Serial)
	assert.Equal(t, 21, pages[1].Rows[0].Serial)
	assert.Equal(t, 41, pages[2].Rows[0].Serial)
	assert.Equal(t, 45, pages[2].Rows[4].Serial)
}

func TestPaginate_PreservesOrder(t *testing.T) {
	items := makeItems(45)
	pages, err := Paginate(items, 20, types.SerialModeContinuous)
	require.NoError(t, err)

	var ids []types.RecordID
	for _, p := range pages {
		for _, r := range p.Rows {
			ids = append(ids, r.Item.ID)
		}
	}
	assert.Equal(t, lo.Map(items, func(i *bill.LineItem, _ int) types.RecordID { return i.ID }), ids)
}

func TestPaginate_PageSubtotals(t *testing.T) {
	pages, err := Paginate(makeItems(45), 20, types.SerialModePerPage)
	require.NoError(t, err)

	// rates are 1..45 so each page sums its own range only
	assert.Equal(t, "210.00", types.FormatAmount(pages[0].Subtotal))
	assert.Equal(t, "610.00", types.FormatAmount(pages[1].Subtotal))
	assert.Equal(t, "215.00", types.FormatAmount(pages[2].Subtotal))
}

func TestPaginate_SingleItem(t *testing.T) {
	item := bill.NewBlankLineItem()
	item.Quantity = types.ParseNullAmount("2")
	item.Rate = types.ParseNullAmount("50.5")
	item.Recalculate()

	pages, err := Paginate([]*bill.LineItem{item}, 20, types.SerialModeContinuous)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.True(t, item.Amount.Equal(pages[0].Subtotal))
	assert.Equal(t, 1, pages[0].Rows[0].Serial)
}

func TestPaginate_Empty(t *testing.T) {
	pages, err := Paginate(nil, 20, types.SerialModeContinuous)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPaginate_InvalidArguments(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := Paginate(makeItems(3), capacity, types.SerialModePerPage)
		assert.True(t, ierr.IsInvalidArgument(err), "capacity %d", capacity)
	}

	_, err := Paginate(makeItems(3), 20, types.SerialMode("roman"))
	assert.True(t, ierr.IsInvalidArgument(err))
}

func TestPaginate_Idempotent(t *testing.T) {
	items := makeItems(33)

	first, err := Paginate(items, 10, types.SerialModeContinuous)
	require.NoError(t, err)
	second, err := Paginate(items, 10, types.SerialModeContinuous)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPaginate_DoesNotShareRows(t *testing.T) {
	items := makeItems(2)
	pages, err := Paginate(items, 20, types.SerialModePerPage)
	require.NoError(t, err)

	items[0].Description = "changed afterwards"
	assert.Equal(t, "Item 1", pages[0].Rows[0].Item.Description)
}

func TestPrintPaginator_UsesConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Print.PageCapacity = 10
	cfg.Print.SerialMode = types.SerialModeContinuous

	pages, err := NewPrintPaginator(cfg).Paginate(makeItems(25))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 5}, pageSizes(pages))
	assert.Equal(t, 21, pages[2].Rows[0].Serial)
}
