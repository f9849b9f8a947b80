// README: Nominatim geocoding client.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"motofrete/internal/types"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves addresses with an OpenStreetMap Nominatim
// instance. Nominatim's usage policy requires an identifying User-Agent.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string, httpClient *http.Client) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NominatimGeocoder{baseURL: strings.TrimRight(baseURL, "/"), userAgent: userAgent, http: httpClient}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (types.Point, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Point{}, ErrNoMatch
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return types.Point{}, err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return types.Point{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return types.Point{}, fmt.Errorf("nominatim %d: %s", resp.StatusCode, string(b))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return types.Point{}, fmt.Errorf("decode nominatim body: %w", err)
	}
	if len(places) == 0 {
		return types.Point{}, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return types.Point{}, fmt.Errorf("parse lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return types.Point{}, fmt.Errorf("parse lon %q: %w", places[0].Lon, err)
	}
	return types.Point{Lat: lat, Lng: lng}, nil
}
