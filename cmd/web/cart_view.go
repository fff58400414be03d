package main

import (
	"dommatos.com/tienda-web/internal/cart"
)

// CartItem is a line in the cart table.
type CartItem struct {
	ID        int64
	Name      string
	Image     string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// CartView aggregates the cart page, table fragment, and badge.
type CartView struct {
	Lang      string
	Items     []CartItem
	Empty     bool
	Count     int
	Subtotal  string
	CSRFToken string
}

func buildCartView(lang, csrfToken string, c *cart.Cart) CartView {
	items := make([]CartItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, CartItem{
			ID:        l.ID,
			Name:      l.Name,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: l.Price.Display(),
			LineTotal: l.SubtotalDisplay(),
		})
	}
	return CartView{
		Lang:      lang,
		Items:     items,
		Empty:     c.Empty(),
		Count:     c.TotalCount(),
		Subtotal:  c.SubtotalDisplay(),
		CSRFToken: csrfToken,
	}
}
