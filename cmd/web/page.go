package main

import (
	"net/http"

	"dommatos.com/tienda-web/internal/cart"
	"dommatos.com/tienda-web/internal/content"
	mw "dommatos.com/tienda-web/internal/middleware"
	"dommatos.com/tienda-web/internal/nav"
)

// PageData is the shared view model for full page renders.
type PageData struct {
	Title       string
	Description string
	Lang        string
	Path        string
	Canonical   string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	CartCount   int

	Home    HomeView
	Store   StoreView
	Cart    CartView
	Content content.Page
}

// newPageData fills the chrome every page shares: nav, breadcrumbs, locale,
// CSRF token, and the cart badge count.
func newPageData(r *http.Request, titleKey, defTitle string) PageData {
	lang := mw.Lang(r)
	lines := cartStore.Load(r)
	title := i18nOrDefault(lang, titleKey, defTitle)
	brand := i18nOrDefault(lang, "brand.name", "Dommatos")
	return PageData{
		Title:       title + " | " + brand,
		Lang:        lang,
		Path:        r.URL.Path,
		Canonical:   absoluteURL(r),
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		CartCount:   cart.New(lines).TotalCount(),
	}
}
