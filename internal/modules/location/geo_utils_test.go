package location

import (
	"math"
	"testing"

	"motofrete/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: -15.752369, Lng: -48.324535},
			b:         types.Point{Lat: -15.752369, Lng: -48.324535},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "one degree of longitude at the equator (~111km)",
			a:         types.Point{Lat: 0, Lng: 0},
			b:         types.Point{Lat: 0, Lng: 1},
			wantKm:    111.19,
			tolerance: 0.5,
		},
		{
			name:      "Brasilia to Goiania (~173km)",
			a:         types.Point{Lat: -15.7939, Lng: -47.8828},
			b:         types.Point{Lat: -16.6869, Lng: -49.2648},
			wantKm:    173,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: -15.75, Lng: -48.32}
	b := types.Point{Lat: -15.80, Lng: -48.20}
	d1 := HaversineKm(a, b)
	d2 := HaversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
	if d1 < 0 {
		t.Errorf("negative distance: %f", d1)
	}
}

func TestDestination_RoundTrip(t *testing.T) {
	origin := types.Point{Lat: -15.752369, Lng: -48.324535}
	for _, bearing := range []float64{0, 45, 90, 180, 270} {
		dest := Destination(origin, bearing, 5)
		if got := HaversineKm(origin, dest); math.Abs(got-5) > 0.001 {
			t.Errorf("bearing %.0f: distance = %f, want 5", bearing, got)
		}
	}
}
