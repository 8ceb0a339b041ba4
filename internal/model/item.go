package model

// PurchaseItem is the domain model for a shopping list entry.
// ID is assigned by the store on insert and never changes afterwards.
type PurchaseItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Partition splits items by their done flag, preserving relative order.
func Partition(items []PurchaseItem) (pending, done []PurchaseItem) {
	pending = make([]PurchaseItem, 0, len(items))
	done = make([]PurchaseItem, 0, len(items))
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pending = append(pending, it)
		}
	}
	return pending, done
}

// Stats counts done and pending items.
func Stats(items []PurchaseItem) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
