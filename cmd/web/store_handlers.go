package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dommatos.com/tienda-web/internal/catalog"
	mw "dommatos.com/tienda-web/internal/middleware"
	"dommatos.com/tienda-web/internal/observability"
)

const (
	modalMinQty = 1
	modalMaxQty = 99
)

// StoreHandler renders the product listing page.
func StoreHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "store.title", "Productos")
	vm.Description = i18nOrDefault(vm.Lang, "store.description", "Catálogo de productos disponibles.")
	vm.Store = buildStoreView(r.Context(), vm.Lang, mw.GetSession(r).ID, r.URL.Query())
	renderPage(w, r, "store", vm)
}

// StoreGridFrag re-renders the grid, pagination, and filter bar for htmx
// driven filtering and paging.
func StoreGridFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := buildStoreView(r.Context(), lang, mw.GetSession(r).ID, r.URL.Query())
	push := "/productos"
	if view.Query != "" {
		push += "?" + view.Query
	}
	w.Header().Set("HX-Push-Url", push)
	renderTemplate(w, r, "frag_product_grid", view)
}

// ModalView is the product detail modal view model.
type ModalView struct {
	Lang     string
	Found    bool
	Product  ProductCard
	Desc     string
	Quantity int
}

// ProductModalFrag renders the product detail modal from the session's cached
// listing page.
func ProductModalFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := ModalView{Lang: lang, Quantity: modalMinQty}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if p, ok := pageCache.Find(mw.GetSession(r).ID, id); ok {
			view.Found = true
			view.Product = productCards([]catalog.Product{p})[0]
			view.Desc = p.Descripcion
		}
	}
	if !view.Found {
		observability.FromContext(r.Context()).Warn("modal product not in session cache",
			zap.String("id", chi.URLParam(r, "id")))
	}
	renderTemplate(w, r, "frag_product_modal", view)
}

// ModalQuantityFrag clamps the requested quantity and re-renders the stepper.
func ModalQuantityFrag(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	qty := clampQty(pageNumber(r.URL.Query().Get("cantidad")) + stepDelta(r.URL.Query().Get("delta")))
	renderTemplate(w, r, "frag_modal_qty", map[string]any{
		"ID":       id,
		"Quantity": qty,
	})
}

func stepDelta(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func clampQty(qty int) int {
	if qty < modalMinQty {
		return modalMinQty
	}
	if qty > modalMaxQty {
		return modalMaxQty
	}
	return qty
}
