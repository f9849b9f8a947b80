// README: Delivery quote handlers for submit/get/reset/map.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motofrete/internal/http/middleware"
	"motofrete/internal/modules/delivery"
	"motofrete/internal/types"
)

type DeliveryService interface {
	Submit(ctx context.Context, sessionID types.ID, cmd delivery.SubmitCommand) (*delivery.Result, error)
	Current(ctx context.Context, sessionID types.ID) (*delivery.Result, error)
	Reset(ctx context.Context, sessionID types.ID) error
}

type DeliveryHandler struct {
	delivery DeliveryService
	phone    string
}

func NewDeliveryHandler(svc DeliveryService, phone string) *DeliveryHandler {
	return &DeliveryHandler{delivery: svc, phone: phone}
}

type submitQuoteReq struct {
	Address   string   `json:"address"`
	Reference string   `json:"reference"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

type quoteView struct {
	ID             types.ID      `json:"id"`
	Origin         types.Point   `json:"origin"`
	Destination    types.Point   `json:"destination"`
	Path           []types.Point `json:"path"`
	DistanceKm     float64       `json:"distance_km"`
	Fee            float64       `json:"fee"`
	Currency       string        `json:"currency"`
	FeeDisplay     string        `json:"fee_display"`
	ETAMinutes     int           `json:"eta_minutes"`
	Address        string        `json:"address"`
	Reference      string        `json:"reference"`
	LocationSource string        `json:"location_source"`
	IsFallback     bool          `json:"is_fallback"`
	WhatsAppURL    string        `json:"whatsapp_url"`
	MapURL         string        `json:"map_url"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (h *DeliveryHandler) view(r *delivery.Result) quoteView {
	price := r.Price()
	return quoteView{
		ID:             r.ID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		Path:           r.Route.Path,
		DistanceKm:     r.DistanceKm(),
		Fee:            price.Float(),
		Currency:       price.Currency,
		FeeDisplay:     price.Display(),
		ETAMinutes:     r.ETAMinutes(),
		Address:        r.Address,
		Reference:      r.Reference,
		LocationSource: string(r.Source),
		IsFallback:     r.Route.IsFallback,
		WhatsAppURL:    delivery.WhatsAppURL(h.phone, *r),
		MapURL:         delivery.MapsURL(r.Destination),
		CreatedAt:      r.CreatedAt,
	}
}

func (h *DeliveryHandler) Submit(c *gin.Context) {
	var req submitQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := delivery.SubmitCommand{Address: req.Address, Reference: req.Reference}
	if req.Lat != nil && req.Lng != nil {
		cmd.Device = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}
	res, err := h.delivery.Submit(c.Request.Context(), middleware.SessionID(c), cmd)
	if err != nil {
		writeDeliveryError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, h.view(res))
}

func (h *DeliveryHandler) Get(c *gin.Context) {
	res, err := h.delivery.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeDeliveryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.view(res))
}

func (h *DeliveryHandler) Reset(c *gin.Context) {
	if err := h.delivery.Reset(c.Request.Context(), middleware.SessionID(c)); err != nil {
		writeDeliveryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DeliveryHandler) Map(c *gin.Context) {
	res, err := h.delivery.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeDeliveryError(c, err)
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, delivery.MapView(*res))
}
