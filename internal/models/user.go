package models

// User represents one person splitting the bill.
// There are no accounts: a user exists only inside a single ledger and is
// identified by a generated ID plus a display name.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`
}
