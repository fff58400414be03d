package main

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"dommatos.com/tienda-web/internal/catalog"
)

// ProductCard is the grid cell view model.
type ProductCard struct {
	ID       int64
	Name     string
	Brand    string
	Category string
	SKU      string
	Image    string
	NoImage  bool
	Price    string
}

// StoreView aggregates the product listing page and its fragments.
type StoreView struct {
	Lang       string
	Categories []catalog.Category
	Products   []ProductCard
	Pagination PaginationView
	Filters    []FilterChip
	Filtered   bool
	// Query is the canonical page+filters string for URL pushes.
	Query     string
	RetryURL  string
	LoadError bool
	Empty     bool
}

// PaginationView drives the pager fragment. URLs are prebuilt so templates
// never assemble query strings.
type PaginationView struct {
	Page    int
	Total   int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
}

// FilterChip describes one active filter for the feedback bar.
type FilterChip struct {
	Param string
	Value string
}

// Filter returns the active value for a filter param, or "" when unset. The
// filter form uses it to echo the current search on full-page loads.
func (v StoreView) Filter(param string) string {
	for _, c := range v.Filters {
		if c.Param == param {
			return c.Value
		}
	}
	return ""
}

// buildStoreView fetches a catalog page and shapes it for rendering. The
// fetched products are cached per session so modal and add-to-cart lookups
// can resolve them without refetching.
func buildStoreView(ctx context.Context, lang, sessionID string, query url.Values) StoreView {
	filters := catalog.FilterParams(query)
	page := pageNumber(query.Get("page"))

	view := StoreView{
		Lang:       lang,
		Categories: catalogClient.FetchCategories(ctx),
		Filtered:   len(filters) > 0,
		Filters:    filterChips(filters),
		Query:      storeQuery(page, filters),
	}
	view.RetryURL = gridURL(page, filters)

	result, err := catalogClient.FetchProducts(ctx, page, filters)
	if err != nil {
		view.LoadError = true
		return view
	}
	pageCache.Put(sessionID, result.Items)

	view.Products = productCards(result.Items)
	view.Empty = len(result.Items) == 0
	view.Pagination = PaginationView{
		Page:    result.Pagination.Page,
		Total:   result.Pagination.TotalPages,
		HasPrev: result.Pagination.HasPrevPage,
		HasNext: result.Pagination.HasNextPage,
	}
	if view.Pagination.Page == 0 {
		view.Pagination.Page = page
	}
	view.Pagination.PrevURL = gridURL(view.Pagination.Page-1, filters)
	view.Pagination.NextURL = gridURL(view.Pagination.Page+1, filters)
	return view
}

// gridURL builds a /productos/grid URL for the pager.
func gridURL(page int, filters url.Values) string {
	q := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return "/productos/grid?" + q.Encode()
}

func productCards(items []catalog.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, ProductCard{
			ID:       p.ID,
			Name:     p.Nombre,
			Brand:    p.Marca,
			Category: p.CategoriaNombre,
			SKU:      p.SKU,
			Image:    productImage(p),
			NoImage:  strings.TrimSpace(p.FotoURL) == "",
			Price:    p.PrecioVentaBase.Display(),
		})
	}
	return cards
}

func productImage(p catalog.Product) string {
	if strings.TrimSpace(p.FotoURL) != "" {
		return p.FotoURL
	}
	return "/assets/images/placeholder.svg"
}

func pageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func filterChips(filters url.Values) []FilterChip {
	chips := make([]FilterChip, 0, len(filters))
	for _, param := range []string{"nombre", "marca", "modelo", "sku", "codigo_barras", "categoria_id"} {
		if v := filters.Get(param); v != "" {
			chips = append(chips, FilterChip{Param: param, Value: v})
		}
	}
	return chips
}

func storeQuery(page int, filters url.Values) string {
	q := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q.Encode()
}
