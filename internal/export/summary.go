// Package export renders a bill breakdown as shareable plain text.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/okayfine/billsplit/internal/models"
)

// RoundCents rounds a non-negative amount half-up to two decimals.
// Share division leaves sub-cent noise (e.g. 10/3); every displayed amount
// goes through this one rule so the summary stays consistent.
//
// Half-up applies to the represented float64 value, not the decimal
// literal it was written as: 8.495 is stored as 8.49499…, so it rounds
// down to 8.49, while an exactly representable half like 0.125 rounds up
// to 0.13.
func RoundCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// FormatPrice renders an amount as a dollar string after cent rounding.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", RoundCents(amount))
}

// RenderSummary renders the breakdown as the shareable text summary: a
// total header, an items overview with split details, then one section
// per user with item shares and a total footer. Output is deterministic
// for a given breakdown.
func RenderSummary(items []models.Item, breakdown models.Breakdown) string {
	var b strings.Builder

	b.WriteString("🧾 Bill Summary\n\n")
	fmt.Fprintf(&b, "💰 Total Bill Amount: %s\n\n", FormatPrice(breakdown.BillTotal))

	b.WriteString("📋 Items Overview:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• %s: %s", item.Name, FormatPrice(item.Price))
		if n := len(item.AssignedTo); n > 0 {
			fmt.Fprintf(&b, " (Split %d ways - %s each)", n, FormatPrice(item.Price/float64(n)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n👥 Individual Shares:\n")
	for _, share := range breakdown.Shares {
		fmt.Fprintf(&b, "\n%s's Items:\n", share.UserName)
		for _, si := range share.Items {
			fmt.Fprintf(&b, "• %s: %s", si.ItemName, FormatPrice(si.SharePrice))
			if si.SharedWith > 1 {
				fmt.Fprintf(&b, " (Split %d ways, full price: %s)", si.SharedWith, FormatPrice(si.FullPrice))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Total for %s: %s\n", share.UserName, FormatPrice(share.Total))
	}

	return b.String()
}
