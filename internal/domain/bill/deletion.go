package bill

import "github.com/mjfashion/billdesk/internal/types"

// DeletionSet collects the ids of persisted rows removed during an edit session.
// Ids keep the order they were removed in and are never recorded twice.
type DeletionSet struct {
	ids  []types.RecordID
	seen map[types.RecordID]struct{}
}

func NewDeletionSet() *DeletionSet {
	return &DeletionSet{seen: make(map[types.RecordID]struct{})}
}

// Add records id. Zero ids are ignored since unsaved rows need no deletion.
func (d *DeletionSet) Add(id types.RecordID) {
	if id.IsZero() {
		return
	}
	if _, ok := d.seen[id]; ok {
		return
	}
	d.seen[id] = struct{}{}
	d.ids = append(d.ids, id)
}

func (d *DeletionSet) Contains(id types.RecordID) bool {
	_, ok := d.seen[id]
	return ok
}

func (d *DeletionSet) Len() int {
	return len(d.ids)
}

// IDs returns a copy of the recorded ids
func (d *DeletionSet) IDs() []types.RecordID {
	out := make([]types.RecordID, len(d.ids))
	copy(out, d.ids)
	return out
}
