package models

// Item represents a single line item on the bill.
// Items can be shared among multiple users; the calculator splits the
// price equally among everyone assigned.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name of the item (e.g., "Pasta Carbonara").
	// The ledger does not reject empty names; input validation belongs
	// to the caller.
	Name string `json:"name"`

	// Price is the item's price in the bill's currency. Stored exactly
	// as entered.
	Price float64 `json:"price"`

	// AssignedTo is the ordered list of user IDs sharing this item.
	// Empty means unassigned. The ledger guarantees no duplicates and
	// no references to removed users.
	AssignedTo []string `json:"assigned_to"`
}

// Assigned reports whether userID is in the item's assignment set.
func (i *Item) Assigned(userID string) bool {
	for _, id := range i.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
