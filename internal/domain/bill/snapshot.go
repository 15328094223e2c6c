package bill

import (
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/samber/lo"
)

// Snapshot is the submission payload of an editing session: the current rows,
// the persisted rows removed so far, and the totals derived from them.
type Snapshot struct {
	Items     []*LineItem      `json:"items"`
	Deleted   []types.RecordID `json:"billing_to_delete"`
	Aggregate Aggregate        `json:"aggregate"`
}

// CopyItems deep copies a slice of line items
func CopyItems(items []*LineItem) []*LineItem {
	return lo.Map(items, func(item *LineItem, _ int) *LineItem {
		return item.Copy()
	})
}
