package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestFilterParamsCategoryPrecedence(t *testing.T) {
	q, _ := url.ParseQuery("category=7&marca=Acme")
	got := FilterParams(q)
	if got.Get("categoria_id") != "7" {
		t.Fatalf("expected categoria_id=7, got %q", got.Get("categoria_id"))
	}
	if got.Get("marca") != "Acme" {
		t.Fatalf("expected marca=Acme, got %q", got.Get("marca"))
	}
	if len(got["categoria_id"]) != 1 {
		t.Fatalf("expected exactly one categoria_id value, got %v", got["categoria_id"])
	}
}

func TestFilterParamsCategoryWinsOverCategoriaID(t *testing.T) {
	q, _ := url.ParseQuery("category=7&categoria_id=9")
	got := FilterParams(q)
	if got.Get("categoria_id") != "7" {
		t.Fatalf("expected explicit category to win, got %q", got.Get("categoria_id"))
	}
	if len(got["categoria_id"]) != 1 {
		t.Fatalf("expected single categoria_id, got %v", got["categoria_id"])
	}
}

func TestFilterParamsDropsUnknownParams(t *testing.T) {
	q, _ := url.ParseQuery("sku=AB-1&evil=<script>&page=3")
	got := FilterParams(q)
	if got.Get("sku") != "AB-1" {
		t.Fatalf("expected sku passthrough, got %q", got.Get("sku"))
	}
	if got.Has("evil") || got.Has("page") {
		t.Fatalf("expected non-allow-listed params dropped, got %v", got)
	}
}

func TestFetchProductsBuildsQueryAndDecodes(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/productos" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 1, "nombre": "Router X", "marca": "Acme", "precio_venta_base": "2.500.000"},
				{"id": 2, "nombre": "Switch Y", "marca": "Acme", "precio_venta_base": 950000},
			},
			"pagination": map[string]any{"page": 2, "totalPages": 5, "hasPrevPage": true, "hasNextPage": true},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	q, _ := url.ParseQuery("category=7&marca=Acme")
	page, err := c.FetchProducts(context.Background(), 2, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("limit") != "50" {
		t.Fatalf("expected page=2 limit=50, got %v", gotQuery)
	}
	if gotQuery.Get("categoria_id") != "7" || gotQuery.Get("marca") != "Acme" {
		t.Fatalf("expected filter passthrough, got %v", gotQuery)
	}
	if len(gotQuery["categoria_id"]) != 1 {
		t.Fatalf("categoria_id duplicated: %v", gotQuery["categoria_id"])
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].PrecioVentaBase != 2500000 {
		t.Fatalf("expected formatted price normalized to 2500000, got %d", page.Items[0].PrecioVentaBase)
	}
	if page.Items[1].PrecioVentaBase != 950000 {
		t.Fatalf("expected numeric price 950000, got %d", page.Items[1].PrecioVentaBase)
	}
	if !page.Pagination.HasPrevPage || !page.Pagination.HasNextPage || page.Pagination.TotalPages != 5 {
		t.Fatalf("unexpected pagination %+v", page.Pagination)
	}
}

func TestFetchProductsSurfacesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "filtro inválido"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.FetchProducts(context.Background(), 1, nil); err == nil {
		t.Fatalf("expected error for success=false response")
	}
}

func TestFetchCategoriesDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if got := c.FetchCategories(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty categories on server error, got %v", got)
	}

	// Unreachable host degrades the same way.
	dead := NewClient("http://127.0.0.1:1", nil)
	if got := dead.FetchCategories(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty categories on network error, got %v", got)
	}
}

func TestFetchCategoriesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categorias" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": 3, "nombre": "Redes", "descripcion": "Equipos de red"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	got := c.FetchCategories(context.Background())
	if len(got) != 1 || got[0].Nombre != "Redes" {
		t.Fatalf("unexpected categories %v", got)
	}
}

func TestPageCacheFindAndExpiry(t *testing.T) {
	cache := NewPageCache()
	cache.SetTTL(30 * time.Millisecond)
	cache.Put("sess-1", []Product{{ID: 4, Nombre: "Antena"}})

	if _, ok := cache.Find("sess-2", 4); ok {
		t.Fatalf("expected miss for foreign session")
	}
	p, ok := cache.Find("sess-1", 4)
	if !ok || p.Nombre != "Antena" {
		t.Fatalf("expected hit, got ok=%v p=%+v", ok, p)
	}
	if _, ok := cache.Find("sess-1", 99); ok {
		t.Fatalf("expected miss for unknown product")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := cache.Find("sess-1", 4); ok {
		t.Fatalf("expected expired snapshot to miss")
	}
	if n := cache.size(); n != 0 {
		t.Fatalf("expected expired entry evicted on read, have %d", n)
	}
}

func TestPageCacheEvictsExpiredSessions(t *testing.T) {
	cache := NewPageCache()
	cache.SetTTL(10 * time.Millisecond)
	for i := 0; i < 100; i++ {
		cache.Put(fmt.Sprintf("sess-%d", i), []Product{{ID: int64(i)}})
	}
	if n := cache.size(); n != 100 {
		t.Fatalf("expected 100 snapshots, have %d", n)
	}

	time.Sleep(25 * time.Millisecond)
	cache.Purge()
	if n := cache.size(); n != 0 {
		t.Fatalf("expected all expired snapshots dropped, have %d", n)
	}
}

func TestPageCachePurgeEveryStopsOnCancel(t *testing.T) {
	cache := NewPageCache()
	cache.SetTTL(5 * time.Millisecond)
	cache.Put("s", []Product{{ID: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.PurgeEvery(ctx, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for cache.size() != 0 {
		select {
		case <-deadline:
			t.Fatal("janitor never dropped the expired snapshot")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}

func TestPageCachePutReplacesSnapshot(t *testing.T) {
	cache := NewPageCache()
	cache.Put("s", []Product{{ID: 1}})
	cache.Put("s", []Product{{ID: 2}})
	if _, ok := cache.Find("s", 1); ok {
		t.Fatalf("expected old page replaced")
	}
	if _, ok := cache.Find("s", 2); !ok {
		t.Fatalf("expected new page present")
	}
}

func TestPriceUnmarshalVariants(t *testing.T) {
	var p struct {
		V Price `json:"v"`
	}
	for raw, want := range map[string]int64{
		`{"v": "2.500.000"}`: 2500000,
		`{"v": 1999.6}`:      2000,
		`{"v": null}`:        0,
		`{"v": "$1.200"}`:    1200,
	} {
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if int64(p.V) != want {
			t.Fatalf("%s: expected %d, got %d", raw, want, p.V)
		}
	}
}
