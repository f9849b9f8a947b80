// README: GeoJSON map payload for a quote.
package delivery

import "motofrete/internal/types"

// FeatureCollection is the GeoJSON payload a web map renders for a quote.
type FeatureCollection struct {
	Type       string         `json:"type"`
	Features   []Feature      `json:"features"`
	Properties map[string]any `json:"properties,omitempty"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

const defaultZoom = 14

// MapView renders the route as a blue line with a green store marker and a
// red destination marker, centred on the store.
func MapView(r Result) FeatureCollection {
	line := make([][2]float64, len(r.Route.Path))
	for i, p := range r.Route.Path {
		line[i] = lngLat(p)
	}

	return FeatureCollection{
		Type: "FeatureCollection",
		Properties: map[string]any{
			"center": lngLat(r.Origin),
			"zoom":   defaultZoom,
		},
		Features: []Feature{
			{
				Type:     "Feature",
				Geometry: Geometry{Type: "LineString", Coordinates: line},
				Properties: map[string]any{
					"kind":        "route",
					"color":       "blue",
					"weight":      5,
					"opacity":     0.7,
					"distance_km": r.DistanceKm(),
					"is_fallback": r.Route.IsFallback,
				},
			},
			{
				Type:     "Feature",
				Geometry: Geometry{Type: "Point", Coordinates: lngLat(r.Origin)},
				Properties: map[string]any{
					"kind":  "store",
					"popup": "LOJA",
					"color": "green",
					"icon":  "home",
				},
			},
			{
				Type:     "Feature",
				Geometry: Geometry{Type: "Point", Coordinates: lngLat(r.Destination)},
				Properties: map[string]any{
					"kind":  "destination",
					"popup": "VOCÊ",
					"color": "red",
					"icon":  "flag",
				},
			},
		},
	}
}

// GeoJSON positions are [lon, lat].
func lngLat(p types.Point) [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}
