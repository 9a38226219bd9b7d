package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmehmood/medicart/pkg/router"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/medicines/{id}", "medicines.show", ok)

	path, found := r.Path("medicines.show")
	require.True(t, found)
	assert.Equal(t, "/medicines/{id}", path)

	url, err := r.URL("medicines.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/medicines/7", url)

	_, err = r.URL("no.such.route", nil)
	require.Error(t, err)
}

func TestGroupPrefixesAndServes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/categories", "categories.index", ok)

	admin := api.Group("/admin")
	admin.Post("/medicines", "admin.medicines.create", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/categories")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/admin/medicines", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong method on a registered path.
	resp, err = http.Get(srv.URL + "/api/admin/medicines")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var touched bool
	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			touched = true
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	guarded := r.Group("/guarded", mark)
	guarded.Get("/ping", "guarded.ping", ok)
	r.Get("/open", "open", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/open")
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, touched, "middleware must not run outside its group")

	resp, err = http.Get(srv.URL + "/guarded/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, touched)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Delete("/c", "c", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)

	byName := map[string]router.RouteInfo{}
	for _, ri := range infos {
		byName[ri.Name] = ri
	}
	assert.Equal(t, http.MethodPost, byName["b"].Method)
	assert.Equal(t, "/c", byName["c"].Path)
}
