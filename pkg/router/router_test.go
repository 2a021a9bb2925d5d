package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()

	api := r.Group("/api")
	api.Get("/products", "products.index", ok)

	admin := api.Group("/admin")
	admin.Delete("/products/{id}", "admin.products.destroy", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/products/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupMiddlewareOnlyCoversGroup(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	r := router.New()
	r.Get("/open", "open", ok)
	g := r.Group("/locked", deny)
	g.Get("/inner", "locked.inner", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locked/inner", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/api/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/42", url)

	_, found = r.Path("nope")
	assert.False(t, found)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Post("/api/admin/login", "admin.login", ok)
	r.Get("/api/products", "products.index", ok)

	routes := r.Routes()
	require.Len(t, routes, 2)

	// Sorted by path, then method.
	assert.Equal(t, "/api/admin/login", routes[0].Path)
	assert.Equal(t, http.MethodPost, routes[0].Method)
	assert.Equal(t, "/api/products", routes[1].Path)
}
