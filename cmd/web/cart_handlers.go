package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"dommatos.com/tienda-web/internal/cart"
	mw "dommatos.com/tienda-web/internal/middleware"
	"dommatos.com/tienda-web/internal/observability"
)

// CartHandler renders the cart page with the line item table and the
// quotation request form.
func CartHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "cart.title", "Carrito")
	vm.Description = i18nOrDefault(vm.Lang, "cart.description", "Revisa tu carrito y solicita una cotización.")
	vm.Cart = buildCartView(vm.Lang, vm.CSRFToken, loadCart(r))
	renderPage(w, r, "cart", vm)
}

// CartTableFrag renders the line items table fragment.
func CartTableFrag(w http.ResponseWriter, r *http.Request) {
	renderCartTable(w, r, loadCart(r))
}

// CartBadgeFrag renders the header cart badge.
func CartBadgeFrag(w http.ResponseWriter, r *http.Request) {
	view := buildCartView(mw.Lang(r), mw.GetSession(r).CSRFToken, loadCart(r))
	renderTemplate(w, r, "frag_cart_badge", view)
}

// CartAddHandler adds a product from the session's cached listing page to the
// cart. Unknown products are a logged no-op so a stale page cannot corrupt
// the cart.
func CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang := mw.Lang(r)
	session := mw.GetSession(r)
	logger := observability.FromContext(r.Context())

	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	qty := clampQty(pageNumber(r.FormValue("cantidad")))

	c := loadCart(r)
	product, ok := pageCache.Find(session.ID, id)
	if !ok {
		logger.Warn("add to cart: product not in session cache", zap.Int64("product_id", id))
		triggerToast(w, "error", i18nOrDefault(lang, "cart.addUnavailable", "No se pudo agregar el producto."))
	} else {
		c.Add(product, qty)
		cartStore.Save(w, c.Lines)
		triggerToast(w, "success", i18nOrDefault(lang, "cart.added", "Producto agregado al carrito."))
	}

	view := buildCartView(lang, session.CSRFToken, c)
	renderTemplate(w, r, "frag_cart_badge", view)
}

// CartQuantityHandler bumps a line quantity by the signed delta; the line is
// removed when it reaches zero.
func CartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	delta := stepDelta(r.FormValue("delta"))

	c := loadCart(r)
	c.UpdateQuantity(id, delta)
	cartStore.Save(w, c.Lines)
	renderCartTable(w, r, c)
}

// CartRemoveHandler drops a line from the cart.
func CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	c := loadCart(r)
	c.Remove(id)
	cartStore.Save(w, c.Lines)
	renderCartTable(w, r, c)
}

func loadCart(r *http.Request) *cart.Cart {
	return cart.New(cartStore.Load(r))
}

// renderCartTable emits the table fragment; the badge rides along via an
// out-of-band swap inside the template.
func renderCartTable(w http.ResponseWriter, r *http.Request, c *cart.Cart) {
	view := buildCartView(mw.Lang(r), mw.GetSession(r).CSRFToken, c)
	renderTemplate(w, r, "frag_cart_table", view)
}

func triggerToast(w http.ResponseWriter, level, message string) {
	payload, err := json.Marshal(map[string]any{
		"toast": map[string]string{"level": level, "message": message},
	})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}
