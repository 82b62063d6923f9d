package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		delta                  float64
	}{
		{"Same Point", 40.7128, -74.0060, 40.7128, -74.0060, 0, 0.001},
		{"NYC To LA", 40.7128, -74.0060, 34.0522, -118.2437, 3936, 20},
		{"London To Paris", 51.5074, -0.1278, 48.8566, 2.3522, 344, 5},
		{"Across Equator", -1.2921, 36.8219, 1.3521, 103.8198, 7450, 50},
		{"Short Hop", 40.7128, -74.0060, 40.7580, -73.9855, 5.3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKm, got, tt.delta)
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	t.Parallel()
	a := Haversine(40.7128, -74.0060, 51.5074, -0.1278)
	b := Haversine(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 0.0001)
}
