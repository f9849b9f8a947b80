// README: WhatsApp order message and Google Maps links for a quote.
package delivery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"motofrete/internal/types"
)

const whatsAppBaseURL = "https://wa.me/"

// MapsURL links to the coordinate on Google Maps.
func MapsURL(p types.Point) string {
	return "https://www.google.com/maps?q=" + formatCoord(p.Lat) + "," + formatCoord(p.Lng)
}

// OrderMessage is the text the customer sends to the store.
func OrderMessage(r Result) string {
	var b strings.Builder
	b.WriteString("Olá! Solicito entrega:\n\n")
	fmt.Fprintf(&b, "📍 %s\n", r.Address)
	fmt.Fprintf(&b, "👁️ %s\n\n", r.Reference)
	fmt.Fprintf(&b, "💰 Valor: %s\n", r.Price().Display())
	fmt.Fprintf(&b, "🗺️ Maps: %s", MapsURL(r.Destination))
	return b.String()
}

// WhatsAppURL builds a click-to-chat link with the order message pre-filled.
func WhatsAppURL(phone string, r Result) string {
	return whatsAppBaseURL + phone + "?text=" + percentEncode(OrderMessage(r))
}

// percentEncode escapes spaces as %20 rather than "+", which some WhatsApp
// clients show literally.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
