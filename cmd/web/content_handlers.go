package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dommatos.com/tienda-web/internal/content"
)

// ContentPageHandler renders a localized markdown page such as "sobre-nosotros".
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	vm := newPageData(r, "content.title", "Información")

	page, err := contentStore.Get(slug, vm.Lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}

	brand := i18nOrDefault(vm.Lang, "brand.name", "Dommatos")
	vm.Title = page.Title + " | " + brand
	vm.Description = page.Summary
	vm.Content = page
	renderPage(w, r, "content_page", vm)
}
