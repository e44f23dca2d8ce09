package models

import "time"

// Chore is a recurring or one-off household task.
type Chore struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	AssignedTo  []string `json:"assignedTo"`
	IsCompleted bool     `json:"isCompleted"`
	Date        string   `json:"date"`
	DueDate     string   `json:"dueDate,omitempty"`
}

// ShoppingItem is an entry on the shared shopping list.
type ShoppingItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
	DueDate     string `json:"dueDate,omitempty"`
}

// FridgeItem is a tracked item in the fridge/pantry inventory.
type FridgeItem struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Owner    []string `json:"owner"`
	Type     string   `json:"type"`
	PackedOn string   `json:"packedOn,omitempty"`
	Expires  string   `json:"expires,omitempty"`
}

// Fridge filter status values.
const (
	FridgeStatusAll         = "All"
	FridgeStatusExpired     = "Expired"
	FridgeStatusNearExpired = "NearExpired"
)

// nearExpiryWindow is how close to expiry an item counts as near-expired.
const nearExpiryWindow = 5 * 24 * time.Hour

// FridgeFilter selects fridge items by owner, type, and expiry status.
// "All" (or an empty list) matches everything for that dimension.
type FridgeFilter struct {
	Owners []string
	Types  []string
	Status string
}

// Apply returns the items matching the filter, evaluated against now.
func (f FridgeFilter) Apply(items []FridgeItem, now time.Time) []FridgeItem {
	var out []FridgeItem
	for _, item := range items {
		if matchesAny(f.Owners, item.Owner...) &&
			matchesAny(f.Types, item.Type) &&
			f.matchesStatus(item, now) {
			out = append(out, item)
		}
	}
	return out
}

func (f FridgeFilter) matchesStatus(item FridgeItem, now time.Time) bool {
	if f.Status == "" || f.Status == FridgeStatusAll {
		return true
	}

	expires, err := time.Parse("2006-01-02", item.Expires)
	if err != nil {
		// No parseable expiry date: not expired, not near-expired.
		return false
	}

	switch f.Status {
	case FridgeStatusExpired:
		return expires.Before(now)
	case FridgeStatusNearExpired:
		return expires.After(now) && expires.Sub(now) <= nearExpiryWindow
	}
	return true
}

// matchesAny reports whether any value is in the wanted list, with an empty
// or "All"-containing list matching everything.
func matchesAny(wanted []string, values ...string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if w == "All" {
			return true
		}
		for _, v := range values {
			if v == w {
				return true
			}
		}
	}
	return false
}
