// Package cart consolidates menu selections into unique line items.
//
// All operations are pure value transformations: they take a cart snapshot
// and return a new one, so independent sessions can share the logic without
// sharing state and callers can render a snapshot without stale-mutation
// bugs.
package cart

import (
	"fmt"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
)

// Key identifies a line item: the same menu item with different special
// instructions is a different line. Instructions are compared by exact
// string equality; whitespace or case differences produce separate lines.
type Key struct {
	MenuItemID          string
	SpecialInstructions string
}

// LineItem is one distinct selection in the cart
type LineItem struct {
	MenuItemID          string `json:"menuItemId"`
	Name                string `json:"name"`
	UnitPrice           int64  `json:"unitPrice"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Key returns the customization key of the line
func (li LineItem) Key() Key {
	return Key{MenuItemID: li.MenuItemID, SpecialInstructions: li.SpecialInstructions}
}

// Subtotal returns the line total in yen
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart is an immutable snapshot of the selections for one table. Lines keep
// insertion order for display; no two lines share a customization key.
type Cart struct {
	Table models.TableContext `json:"table"`
	Lines []LineItem          `json:"lines"`
}

// New returns an empty cart bound to the given table context
func New(table models.TableContext) Cart {
	return Cart{Table: table}
}

// Totals holds the aggregate counts of a cart snapshot
type Totals struct {
	ItemCount  int   `json:"itemCount"`
	TotalPrice int64 `json:"totalPrice"`
}

// Totals recomputes the aggregates from the current lines on every call;
// nothing is cached.
func (c Cart) Totals() Totals {
	var t Totals
	for _, line := range c.Lines {
		t.ItemCount += line.Quantity
		t.TotalPrice += line.Subtotal()
	}
	return t
}

// Empty reports whether the cart has no lines
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) clone() Cart {
	out := Cart{Table: c.Table}
	if len(c.Lines) > 0 {
		out.Lines = make([]LineItem, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}

// SelectItem adds a menu item selection to the cart. A selection with the
// same menu item and the same special instructions merges into the existing
// line with summed quantity; otherwise a new line is appended. The unit
// price is copied from the menu item at selection time.
func SelectItem(c Cart, item models.MenuItem, quantity int, specialInstructions string) (Cart, error) {
	if quantity <= 0 {
		return c, fmt.Errorf("%w: quantity must be positive, got %d", apperr.ErrValidation, quantity)
	}
	if !item.Available {
		return c, fmt.Errorf("%w: menu item %q is not available", apperr.ErrValidation, item.Name)
	}

	out := c.clone()
	key := Key{MenuItemID: item.ID, SpecialInstructions: specialInstructions}
	for i, line := range out.Lines {
		if line.Key() == key {
			out.Lines[i].Quantity += quantity
			return out, nil
		}
	}

	out.Lines = append(out.Lines, LineItem{
		MenuItemID:          item.ID,
		Name:                item.Name,
		UnitPrice:           item.Price,
		Quantity:            quantity,
		SpecialInstructions: specialInstructions,
	})
	return out, nil
}

// UpdateQuantity replaces the quantity of the line identified by key.
// A quantity of zero or less removes the line.
func UpdateQuantity(c Cart, key Key, quantity int) (Cart, error) {
	idx := c.indexOf(key)
	if idx < 0 {
		return c, fmt.Errorf("%w: no cart line for item %s", apperr.ErrNotFound, key.MenuItemID)
	}

	out := c.clone()
	if quantity <= 0 {
		out.Lines = append(out.Lines[:idx], out.Lines[idx+1:]...)
		return out, nil
	}
	out.Lines[idx].Quantity = quantity
	return out, nil
}

// RemoveItem deletes the line identified by key
func RemoveItem(c Cart, key Key) (Cart, error) {
	idx := c.indexOf(key)
	if idx < 0 {
		return c, fmt.Errorf("%w: no cart line for item %s", apperr.ErrNotFound, key.MenuItemID)
	}

	out := c.clone()
	out.Lines = append(out.Lines[:idx], out.Lines[idx+1:]...)
	return out, nil
}

// Clear returns an empty cart for the same table
func Clear(c Cart) Cart {
	return Cart{Table: c.Table}
}

func (c Cart) indexOf(key Key) int {
	for i, line := range c.Lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}
