package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/insights", namedHandler("insights"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/insights", routes[0].Url)
}

func TestRouterProvider_SameUrlMergesMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/events", namedHandler("list"))
	rp.Post("/events", namedHandler("create"))
	rp.Delete("/event", namedHandler("delete"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/events", routes[0].Url)
	assert.Equal(t, "/event", routes[1].Url)

	for method, want := range map[string]string{http.MethodGet: "list", http.MethodPost: "create"} {
		rr := httptest.NewRecorder()
		routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(method, "/events", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, want, rr.Body.String())
	}
}

func TestRouterProvider_WrongMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Delete("/event", namedHandler("delete"))

	routes := rp.GetRoutes()
	rr := httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/event", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_Empty(t *testing.T) {
	rp := NewRouterProvider()
	assert.Empty(t, rp.GetRoutes())
}
