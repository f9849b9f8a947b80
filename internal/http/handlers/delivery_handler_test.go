// README: Tests for delivery handler status mapping and result view.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motofrete/internal/http/handlers"
	"motofrete/internal/http/middleware"
	"motofrete/internal/maps"
	"motofrete/internal/modules/delivery"
	"motofrete/internal/modules/location"
	"motofrete/internal/types"
)

var storePoint = types.Point{Lat: -15.752369, Lng: -48.324535}

// stubDelivery is a test double for handlers.DeliveryService.
type stubDelivery struct {
	result  *delivery.Result
	err     error
	lastCmd delivery.SubmitCommand
	resets  int
}

func (s *stubDelivery) Submit(_ context.Context, _ types.ID, cmd delivery.SubmitCommand) (*delivery.Result, error) {
	s.lastCmd = cmd
	return s.result, s.err
}

func (s *stubDelivery) Current(_ context.Context, _ types.ID) (*delivery.Result, error) {
	return s.result, s.err
}

func (s *stubDelivery) Reset(_ context.Context, _ types.ID) error {
	s.resets++
	return s.err
}

func buildTestRouter(svc handlers.DeliveryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Session(middleware.SessionOptions{MaxAge: time.Hour}))
	h := handlers.NewDeliveryHandler(svc, "5561998800459")
	r.POST("/quote", h.Submit)
	r.GET("/quote", h.Get)
	r.DELETE("/quote", h.Reset)
	r.GET("/quote/map", h.Map)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleResult() *delivery.Result {
	dest := types.Point{Lat: -15.76, Lng: -48.31}
	return &delivery.Result{
		ID:          "q-1",
		Origin:      storePoint,
		Destination: dest,
		Route:       maps.Route{Path: []types.Point{storePoint, dest}, DistanceKm: 6.5, IsFallback: true, Provider: "fallback"},
		Fee:         6.125,
		Currency:    types.CurrencyBRL,
		Address:     "Rua 1",
		Reference:   "Casa azul",
		Source:      location.SourceGeocoded,
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSubmit_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty address", delivery.ErrEmptyAddress, http.StatusBadRequest},
		{"unresolved", fmt.Errorf("%w: no match", delivery.ErrLocationUnresolved), http.StatusUnprocessableEntity},
		{"unexpected", fmt.Errorf("store session result: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildTestRouter(&stubDelivery{err: tt.err})
			w := doRequest(r, http.MethodPost, "/quote", `{"address":"Rua 1"}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSubmit_EmptyAddressMessage(t *testing.T) {
	r := buildTestRouter(&stubDelivery{err: delivery.ErrEmptyAddress})
	w := doRequest(r, http.MethodPost, "/quote", `{"address":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"address is required"}`, w.Body.String())
}

func TestSubmit_InvalidJSON(t *testing.T) {
	r := buildTestRouter(&stubDelivery{})
	w := doRequest(r, http.MethodPost, "/quote", `{"address":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_DeviceLocation(t *testing.T) {
	svc := &stubDelivery{result: sampleResult()}
	r := buildTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/quote", `{"address":"Rua 1","reference":"Casa azul","lat":-15.7,"lng":-48.3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastCmd.Device)
	assert.Equal(t, types.Point{Lat: -15.7, Lng: -48.3}, *svc.lastCmd.Device)

	w = doRequest(r, http.MethodPost, "/quote", `{"address":"Rua 1","lat":-15.7}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, svc.lastCmd.Device, "a partial coordinate is ignored")
}

func TestGet_View(t *testing.T) {
	r := buildTestRouter(&stubDelivery{result: sampleResult()})
	w := doRequest(r, http.MethodGet, "/quote", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "q-1", got["id"])
	assert.Equal(t, 6.5, got["distance_km"])
	assert.Equal(t, "R$ 6.13", got["fee_display"])
	assert.Equal(t, float64(13), got["eta_minutes"])
	assert.Equal(t, "geocoded", got["location_source"])
	assert.Equal(t, true, got["is_fallback"])
	assert.Equal(t, "https://www.google.com/maps?q=-15.76,-48.31", got["map_url"])
	assert.True(t, strings.HasPrefix(got["whatsapp_url"].(string), "https://wa.me/5561998800459?text="))
	assert.Len(t, got["path"], 2)
}

func TestGet_NoResult(t *testing.T) {
	r := buildTestRouter(&stubDelivery{err: delivery.ErrNoResult})
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/quote", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/quote/map", "").Code)
}

func TestReset(t *testing.T) {
	svc := &stubDelivery{}
	r := buildTestRouter(svc)
	w := doRequest(r, http.MethodDelete, "/quote", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, svc.resets)
}

func TestMap(t *testing.T) {
	r := buildTestRouter(&stubDelivery{result: sampleResult()})
	w := doRequest(r, http.MethodGet, "/quote/map", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
}
