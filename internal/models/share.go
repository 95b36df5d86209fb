package models

// ShareItem represents one item's share for one user.
type ShareItem struct {
	// ItemID is the ID of the item this share comes from.
	ItemID string `json:"item_id"`

	// ItemName is the item's display name at calculation time.
	ItemName string `json:"item_name"`

	// FullPrice is the item's full price.
	FullPrice float64 `json:"full_price"`

	// SharePrice is this user's portion: FullPrice / SharedWith.
	SharePrice float64 `json:"share_price"`

	// SharedWith is the number of users splitting the item.
	SharedWith int `json:"shared_with"`
}

// UserShare represents one user's computed portion of the bill.
// This is the output of the share calculation; it is derived on demand
// and never stored.
type UserShare struct {
	// UserID is the user this share belongs to.
	UserID string `json:"user_id"`

	// UserName is the user's display name at calculation time.
	UserName string `json:"user_name"`

	// Items are the user's assigned items with their share amounts,
	// in the ledger's item order.
	Items []ShareItem `json:"items"`

	// Total is the sum of SharePrice over Items.
	Total float64 `json:"total"`
}

// Breakdown is the full derived view of a ledger: the bill total plus one
// share per user.
//
// BillTotal sums every item's price regardless of assignment, so the sum
// of all share totals is less than BillTotal whenever items are left
// unassigned.
type Breakdown struct {
	// BillTotal is the sum of all item prices, assigned or not.
	BillTotal float64 `json:"bill_total"`

	// Shares holds one entry per user, in the ledger's user order.
	Shares []UserShare `json:"shares"`
}
