// Package receipt renders plain-text receipts for checkout.
package receipt

import (
	"fmt"
	"strings"

	"github.com/sakuratei/order-system/internal/models"
)

const (
	shopName  = "Izakaya Sakura-tei"
	lineWidth = 40
)

// Render formats an order as a fixed-width text receipt. Cancelled items
// are listed struck from the bill with a zero amount.
func Render(o *models.Order) string {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center(shopName) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString("RECEIPT\n\n")

	b.WriteString(fmt.Sprintf("Order:  %s\n", shortID(o.ID)))
	b.WriteString(fmt.Sprintf("Table:  %s\n", o.TableNumber))
	b.WriteString(fmt.Sprintf("Time:   %s\n", o.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("%-22s %4s %10s\n", "Item", "Qty", "Amount"))
	b.WriteString(thin + "\n")

	for _, item := range o.Items {
		name := item.Name
		if len(name) > 22 {
			name = name[:19] + "..."
		}

		amount := item.Subtotal()
		if item.Status == models.ItemCancelled {
			name = "(cancelled) " + name
			if len(name) > 22 {
				name = name[:22]
			}
			amount = 0
		}

		b.WriteString(fmt.Sprintf("%-22s %4d %10s\n", name, item.Quantity, yen(amount)))
		if item.SpecialInstructions != "" {
			b.WriteString("  * " + item.SpecialInstructions + "\n")
		}
	}

	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("%-27s %12s\n", "TOTAL", yen(o.TotalAmount)))
	b.WriteString(rule + "\n")
	b.WriteString(center("Thank you for your visit!") + "\n")

	return b.String()
}

// yen formats an amount with thousands separators, e.g. ¥12,340
func yen(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "¥" + s
}

func center(s string) string {
	pad := (lineWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
