// Package calculator computes per-user shares from a ledger snapshot.
package calculator

import (
	"github.com/okayfine/billsplit/internal/models"
)

// ComputeShares computes the bill total and each user's share from a
// ledger snapshot.
//
// The bill total sums every item's price, assigned or not, so it reflects
// the full bill even while assignment is still in progress. Each assigned
// item is split equally: a user's portion is price / |assigned|, which
// degenerates to the full price for a single assignee. Unassigned items
// contribute to no share.
//
// Output order is deterministic: one share per user in the snapshot's
// user order, each share's items in the snapshot's item order. An empty
// snapshot is valid and yields a zero total with no shares.
//
// Shares are computed with float division; displayed values may carry
// sub-cent noise and are rounded only at the formatting boundary (see
// internal/export).
func ComputeShares(items []models.Item, users []models.User) models.Breakdown {
	var total float64
	for _, item := range items {
		total += item.Price
	}

	shares := make([]models.UserShare, 0, len(users))
	for _, user := range users {
		share := models.UserShare{
			UserID:   user.ID,
			UserName: user.Name,
			Items:    []models.ShareItem{},
		}
		for _, item := range items {
			if !item.Assigned(user.ID) {
				continue
			}
			sharedWith := len(item.AssignedTo)
			portion := item.Price / float64(sharedWith)
			share.Items = append(share.Items, models.ShareItem{
				ItemID:     item.ID,
				ItemName:   item.Name,
				FullPrice:  item.Price,
				SharePrice: portion,
				SharedWith: sharedWith,
			})
			share.Total += portion
		}
		shares = append(shares, share)
	}

	return models.Breakdown{
		BillTotal: total,
		Shares:    shares,
	}
}
