package cart

import (
	"dommatos.com/tienda-web/internal/catalog"
	"dommatos.com/tienda-web/internal/format"
)

// Line is one cart entry. Name, price, and image are snapshotted from the
// catalog at add time; later catalog changes do not touch existing lines.
// The JSON field names match the payload the original storefront persisted,
// so carts written before this service keep decoding.
type Line struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Price    catalog.Price `json:"price"`
	Image    string        `json:"image,omitempty"`
	Quantity int           `json:"quantity"`
}

// Subtotal is price times quantity in whole pesos.
func (l Line) Subtotal() int64 {
	return int64(l.Price) * int64(l.Quantity)
}

// SubtotalDisplay renders the line subtotal with es-CO separators.
func (l Line) SubtotalDisplay() string {
	return format.Pesos(l.Subtotal())
}

// Cart holds the line list and enforces its invariants: one line per product
// id, quantity >= 1 while a line exists.
type Cart struct {
	Lines []Line
}

// New builds a cart from previously persisted lines, discarding lines that
// no longer satisfy the invariants.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if _, ok := c.find(l.ID); ok {
			continue
		}
		c.Lines = append(c.Lines, l)
	}
	return c
}

// Add merges qty into an existing line for the product or appends a new line
// snapshotting the product's current name, price, and image. qty values
// below 1 count as 1.
func (c *Cart) Add(p catalog.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if i, ok := c.find(p.ID); ok {
		c.Lines[i].Quantity += qty
		return
	}
	c.Lines = append(c.Lines, Line{
		ID:       p.ID,
		Name:     p.Nombre,
		Price:    p.PrecioVentaBase,
		Image:    p.FotoURL,
		Quantity: qty,
	})
}

// UpdateQuantity adjusts a line by delta; a result of zero or below removes
// the line entirely. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id int64, delta int) {
	i, ok := c.find(id)
	if !ok {
		return
	}
	c.Lines[i].Quantity += delta
	if c.Lines[i].Quantity <= 0 {
		c.Remove(id)
	}
}

// Remove filters the line out by id.
func (c *Cart) Remove(id int64) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	c.Lines = out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalCount is the sum of quantities across all lines; it drives the badge,
// which is hidden when the count is zero.
func (c *Cart) TotalCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Subtotal sums all line subtotals in whole pesos.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// SubtotalDisplay renders the cart total with es-CO separators.
func (c *Cart) SubtotalDisplay() string {
	return format.Pesos(c.Subtotal())
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) find(id int64) (int, bool) {
	for i, l := range c.Lines {
		if l.ID == id {
			return i, true
		}
	}
	return -1, false
}
