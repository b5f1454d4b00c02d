// Package cart implements the cart aggregation rules: at most one line per
// menu item, quantities always >= 1, insertion order preserved. All
// operations are pure transformations; the receiver is never mutated.
package cart

type Line struct {
	MenuItemID   string `json:"menu_item_id"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"special_instructions,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) clone() Cart {
	return Cart{Lines: append([]Line(nil), c.Lines...)}
}

// Add increments the quantity of an existing line by one, or appends a new
// line with quantity 1. A non-empty instructions value replaces the old one.
func (c Cart) Add(itemID, instructions string) Cart {
	out := c.clone()
	for i := range out.Lines {
		if out.Lines[i].MenuItemID == itemID {
			out.Lines[i].Quantity++
			if instructions != "" {
				out.Lines[i].Instructions = instructions
			}
			return out
		}
	}
	out.Lines = append(out.Lines, Line{MenuItemID: itemID, Quantity: 1, Instructions: instructions})
	return out
}

// SetQuantity sets the line to qty. qty <= 0 removes the line. Unknown item
// IDs are a no-op.
func (c Cart) SetQuantity(itemID string, qty int) Cart {
	if qty <= 0 {
		return c.Remove(itemID)
	}
	out := c.clone()
	for i := range out.Lines {
		if out.Lines[i].MenuItemID == itemID {
			out.Lines[i].Quantity = qty
			break
		}
	}
	return out
}

// Remove deletes the line if present, keeping the order of the rest.
func (c Cart) Remove(itemID string) Cart {
	out := Cart{Lines: make([]Line, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.MenuItemID != itemID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

func (c Cart) Clear() Cart { return Cart{} }

// Subtotal sums priceOf(item) * quantity over all lines.
func (c Cart) Subtotal(priceOf func(itemID string) int64) int64 {
	var total int64
	for _, l := range c.Lines {
		total += priceOf(l.MenuItemID) * int64(l.Quantity)
	}
	return total
}
