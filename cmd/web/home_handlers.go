package main

import (
	"net/http"

	mw "dommatos.com/tienda-web/internal/middleware"
)

// HomeHandler renders the landing page with the category carousel and a first
// page of products.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "home.title", "Tecnología y soporte")
	vm.Description = i18nOrDefault(vm.Lang, "home.description", "Venta de tecnología, repuestos y servicio técnico.")
	vm.Home = buildHomeView(r.Context(), vm.Lang, mw.GetSession(r).ID)
	renderPage(w, r, "home", vm)
}
