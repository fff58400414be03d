package nav

import "testing"

func TestBuildActiveState(t *testing.T) {
	items := Build("/productos")
	if len(items) != len(Main) {
		t.Fatalf("got %d items, want %d", len(items), len(Main))
	}
	for _, it := range items {
		want := it.Href == "/productos"
		if it.Active != want {
			t.Fatalf("item %s active = %v, want %v", it.Href, it.Active, want)
		}
	}
}

func TestBuildHomeOnlyActiveAtRoot(t *testing.T) {
	for _, it := range Build("/carrito") {
		if it.Href == "/" && it.Active {
			t.Fatal("home must not be active on /carrito")
		}
	}
	for _, it := range Build("/") {
		if it.Href == "/" && !it.Active {
			t.Fatal("home must be active at root")
		}
	}
}

func TestBreadcrumbsDeepPath(t *testing.T) {
	crumbs := Breadcrumbs("/paginas/sobre-nosotros")
	if len(crumbs) != 3 {
		t.Fatalf("got %d crumbs, want 3: %+v", len(crumbs), crumbs)
	}
	if crumbs[0].Href != "/" || crumbs[0].Active {
		t.Fatalf("first crumb should be inactive home, got %+v", crumbs[0])
	}
	last := crumbs[2]
	if last.Href != "/paginas/sobre-nosotros" || !last.Active {
		t.Fatalf("last crumb = %+v", last)
	}
	if last.Label != "Sobre nosotros" {
		t.Fatalf("label = %q, want prettified slug", last.Label)
	}
}

func TestBreadcrumbsRoot(t *testing.T) {
	crumbs := Breadcrumbs("/")
	if len(crumbs) != 1 || !crumbs[0].Active {
		t.Fatalf("root crumbs = %+v", crumbs)
	}
}
