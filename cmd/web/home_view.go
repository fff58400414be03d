package main

import (
	"context"

	"dommatos.com/tienda-web/internal/catalog"
)

// HomeView aggregates the landing page data.
type HomeView struct {
	Lang       string
	Categories []catalog.Category
	Featured   []ProductCard
	LoadError  bool
}

// buildHomeView loads the category carousel and the first page of products.
// Category failures degrade to an empty carousel; product failures surface as
// an inline error block.
func buildHomeView(ctx context.Context, lang, sessionID string) HomeView {
	view := HomeView{
		Lang:       lang,
		Categories: catalogClient.FetchCategories(ctx),
	}
	page, err := catalogClient.FetchProducts(ctx, 1, nil)
	if err != nil {
		view.LoadError = true
		return view
	}
	pageCache.Put(sessionID, page.Items)
	view.Featured = productCards(page.Items)
	return view
}
