package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motofrete/internal/http/middleware"
	"motofrete/internal/maps"
	"motofrete/internal/metrics"
	"motofrete/internal/modules/delivery"
	"motofrete/internal/modules/location"
	"motofrete/internal/modules/pricing"
	"motofrete/internal/types"
)

type fixedGeocoder struct{ point types.Point }

func (g fixedGeocoder) Geocode(context.Context, string) (types.Point, error) {
	return g.point, nil
}

type failingRouter struct{}

func (failingRouter) Route(context.Context, types.Point, types.Point) (maps.Route, error) {
	return maps.Route{}, maps.ErrRoutingUnavailable
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	origin := types.Point{Lat: -15.752369, Lng: -48.324535}
	dest := location.Destination(origin, 90, 5)
	reg := prometheus.NewRegistry()

	svc := delivery.NewService(delivery.Deps{
		Store:   delivery.NewMemoryStore(),
		Locator: location.NewService(fixedGeocoder{point: dest}, nil, "Cocalzinho de Goiás", nil),
		Router:  maps.NewResilientRouter(failingRouter{}, maps.NewFallbackEstimator(1.3), nil),
		Pricer:  pricing.NewService(pricing.DefaultRate(), nil, nil),
	}, origin)

	return NewServer(ServerDeps{
		Delivery:      svc,
		Phone:         "5561998800459",
		Metrics:       metrics.NewServerMetrics(reg),
		Gatherer:      reg,
		SessionMaxAge: time.Hour,
	}).Routes()
}

func send(h http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := send(newTestServer(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestQuoteLifecycle(t *testing.T) {
	h := newTestServer(t)

	w := send(h, http.MethodPost, "/api/v1/delivery/quote", `{"address":"Rua 1","reference":"Casa"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"fee_display":"R$ 6.13"`)
	assert.Contains(t, w.Body.String(), `"is_fallback":true`)

	var session *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	require.NotNil(t, session)

	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/api/v1/delivery/quote", "", session).Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodGet, "/api/v1/delivery/quote", "", nil).Code,
		"another session sees no result")

	assert.Equal(t, http.StatusNoContent, send(h, http.MethodDelete, "/api/v1/delivery/quote", "", session).Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodGet, "/api/v1/delivery/quote", "", session).Code)
	assert.Equal(t, http.StatusNoContent, send(h, http.MethodDelete, "/api/v1/delivery/quote", "", session).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	send(h, http.MethodGet, "/health", "", nil)

	w := send(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "motofrete_http_requests_total")
}
