package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteLookup(t *testing.T) {
	r := New()
	r.Get("/products/{slug}", "catalog.product", ok)

	path, found := r.Path("catalog.product")
	require.True(t, found)
	assert.Equal(t, "/products/{slug}", path)

	url, err := r.URL("catalog.product", map[string]string{"slug": "yoga-mat"})
	require.NoError(t, err)
	assert.Equal(t, "/products/yoga-mat", url)

	_, err = r.URL("catalog.product", nil)
	assert.Error(t, err, "missing params must not build a URL")

	_, err = r.URL("does.not.exist", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", tag("outer"))
	admin := api.Group("/admin", tag("inner"))
	admin.Get("/dashboard", "admin.dashboard", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order, "outer middleware runs first")
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/a", "route.a", ok)
	r.Post("/b", "route.b", ok)
	r.Get("/unnamed", "", ok)

	infos := r.Routes()
	require.Len(t, infos, 2, "unnamed routes are not listed")
	assert.Equal(t, "route.a", infos[0].Name)
	assert.Equal(t, http.MethodPost, infos[1].Method)
}

func TestMethodNotAllowed(t *testing.T) {
	r := New()
	r.Get("/only-get", "only.get", ok)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
