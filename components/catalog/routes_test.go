package catalog

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMountPath(t *testing.T) {
	cases := map[string]string{
		"":        "/api/products",
		"/":       "/api/products",
		"admin":   "/admin/api/products",
		"/admin/": "/admin/api/products",
	}
	for base, want := range cases {
		if got := MountPath(base); got != want {
			t.Fatalf("MountPath(%q): want %q, got %q", base, want, got)
		}
	}
	if got := MountPath("/admin", WithRoutePath("rpc")); got != "/admin/rpc" {
		t.Fatalf("unexpected custom mount path %q", got)
	}
}

func TestRegisterRoutes_ServeMux(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithStore(mustLoadCatalog(t)))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/admin/api/products" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	rec := serve(t, mux, http.MethodGet, "/admin/api/products?action=getAttributesSchema&type=7")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestComponent_RegistersOnChi(t *testing.T) {
	router := chi.NewRouter()
	component := New(WithStore(mustLoadCatalog(t)))
	if _, err := component.RegisterRoutes(router, "/"); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := serve(t, router, http.MethodGet, "/api/products?action=getAttributeValues&type=7&code=meal")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := component.Endpoint("http://localhost:8080/"); got != "http://localhost:8080/api/products" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error")
	}
}
