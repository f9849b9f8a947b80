// README: Shared identifiers and WGS84 coordinates.
package types

import "fmt"

type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// LngLat formats the point in the "lon,lat" order routing services expect.
func (p Point) LngLat() string {
	return fmt.Sprintf("%f,%f", p.Lng, p.Lat)
}

// LatLng formats the point as "lat,lng".
func (p Point) LatLng() string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
