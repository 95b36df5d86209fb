// Package ledger implements the owning aggregate of one bill: its items,
// its users, and the assignment sets linking them.
//
// A Ledger is a plain in-memory structure intended for a single writer.
// It does no locking of its own; callers that share a Ledger across
// goroutines (e.g. the HTTP session layer) serialize access themselves.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okayfine/billsplit/internal/models"
)

var (
	// ErrItemNotFound is returned when an operation references an item
	// ID absent from the ledger.
	ErrItemNotFound = errors.New("item not found")

	// ErrUserNotFound is returned when an operation references a user
	// ID absent from the ledger.
	ErrUserNotFound = errors.New("user not found")
)

// Ledger owns an ordered sequence of items and an ordered sequence of
// users. Invariants maintained by every mutator:
//
//   - item and user IDs are unique within the ledger
//   - every ID in an item's assignment set belongs to a present user
//   - insertion order is preserved for both sequences
type Ledger struct {
	items []models.Item
	users []models.User
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// AddItem creates an item with a fresh ID and an empty assignment set and
// appends it to the item sequence. The price is stored exactly as given;
// rejecting negative or zero prices is the caller's policy, not the
// ledger's.
func (l *Ledger) AddItem(name string, price float64) models.Item {
	item := models.Item{
		ID:         uuid.New().String(),
		Name:       name,
		Price:      price,
		AssignedTo: []string{},
	}
	l.items = append(l.items, item)
	return item
}

// AddItems appends one item per extraction result, preserving the
// service's ordering. Used to merge an upload into the ledger.
func (l *Ledger) AddItems(extracted []models.ExtractedItem) []models.Item {
	added := make([]models.Item, 0, len(extracted))
	for _, e := range extracted {
		added = append(added, l.AddItem(e.Name, e.Price))
	}
	return added
}

// UpdateItem replaces the name and price of the item with the given ID.
// The assignment set is untouched. Returns ErrItemNotFound if no item has
// that ID; the ledger is unchanged in that case.
func (l *Ledger) UpdateItem(id, name string, price float64) (models.Item, error) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Name = name
			l.items[i].Price = price
			return l.items[i], nil
		}
	}
	return models.Item{}, fmt.Errorf("update item %q: %w", id, ErrItemNotFound)
}

// RemoveItem deletes the item with the given ID. Removing an absent ID is
// a no-op: removal is idempotent.
func (l *Ledger) RemoveItem(id string) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// AddUser creates a user with a fresh ID and appends it to the user
// sequence. User order is preserved so share output stays deterministic.
func (l *Ledger) AddUser(name string) models.User {
	user := models.User{
		ID:   uuid.New().String(),
		Name: name,
	}
	l.users = append(l.users, user)
	return user
}

// RemoveUser deletes the user with the given ID and strips that ID from
// every item's assignment set. The cascade is unconditional and never
// fails, even when the ID is absent.
func (l *Ledger) RemoveUser(id string) {
	for i := range l.users {
		if l.users[i].ID == id {
			l.users = append(l.users[:i], l.users[i+1:]...)
			break
		}
	}
	for i := range l.items {
		assigned := l.items[i].AssignedTo
		for j, uid := range assigned {
			if uid == id {
				l.items[i].AssignedTo = append(assigned[:j], assigned[j+1:]...)
				break
			}
		}
	}
}

// ToggleAssignment adds the user to the item's assignment set if absent,
// or removes it if present, returning the updated item. Toggling twice
// restores the prior state.
//
// Both IDs must exist: an unknown item or user yields ErrItemNotFound or
// ErrUserNotFound respectively, keeping assignment sets free of dangling
// references.
func (l *Ledger) ToggleAssignment(itemID, userID string) (models.Item, error) {
	if !l.hasUser(userID) {
		return models.Item{}, fmt.Errorf("assign user %q: %w", userID, ErrUserNotFound)
	}
	for i := range l.items {
		if l.items[i].ID != itemID {
			continue
		}
		toggled := false
		for j, uid := range l.items[i].AssignedTo {
			if uid == userID {
				l.items[i].AssignedTo = append(l.items[i].AssignedTo[:j], l.items[i].AssignedTo[j+1:]...)
				toggled = true
				break
			}
		}
		if !toggled {
			l.items[i].AssignedTo = append(l.items[i].AssignedTo, userID)
		}
		item := l.items[i]
		item.AssignedTo = append([]string{}, item.AssignedTo...)
		return item, nil
	}
	return models.Item{}, fmt.Errorf("assign item %q: %w", itemID, ErrItemNotFound)
}

// Reset clears all items and users, returning the ledger to its initial
// state.
func (l *Ledger) Reset() {
	l.items = nil
	l.users = nil
}

// Items returns a copy of the item sequence in insertion order.
// Assignment sets are copied too, so callers can hold the snapshot across
// later mutations.
func (l *Ledger) Items() []models.Item {
	items := make([]models.Item, len(l.items))
	for i, item := range l.items {
		item.AssignedTo = append([]string{}, item.AssignedTo...)
		items[i] = item
	}
	return items
}

// Users returns a copy of the user sequence in insertion order.
func (l *Ledger) Users() []models.User {
	return append([]models.User{}, l.users...)
}

func (l *Ledger) hasUser(id string) bool {
	for _, u := range l.users {
		if u.ID == id {
			return true
		}
	}
	return false
}
