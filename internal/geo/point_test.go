package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKT(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Point
		wantErr bool
	}{
		{name: "canonical", in: "POINT(13.4 52.5)", want: Point{Lng: 13.4, Lat: 52.5}},
		{name: "lowercase with spaces", in: "  point ( 2.35   48.85 ) ", want: Point{Lng: 2.35, Lat: 48.85}},
		{name: "negative coordinates", in: "POINT(-73.9857 40.7484)", want: Point{Lng: -73.9857, Lat: 40.7484}},
		{name: "empty", in: "", wantErr: true},
		{name: "wrong keyword", in: "LINESTRING(1 2, 3 4)", wantErr: true},
		{name: "missing parens", in: "POINT 1 2", wantErr: true},
		{name: "one coordinate", in: "POINT(1)", wantErr: true},
		{name: "three coordinates", in: "POINT(1 2 3)", wantErr: true},
		{name: "not a number", in: "POINT(abc 2)", wantErr: true},
		{name: "latitude out of range", in: "POINT(10 95)", wantErr: true},
		{name: "longitude out of range", in: "POINT(181 0)", wantErr: true},
		{name: "NaN", in: "POINT(NaN 0)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWKT(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPoint_WKTRoundTrip(t *testing.T) {
	for _, in := range []string{"POINT(13.4 52.5)", "POINT(2.35 48.85)", "POINT(-0.1278 51.5074)", "POINT(0 0)"} {
		p, err := ParseWKT(in)
		require.NoError(t, err)
		assert.Equal(t, in, p.WKT())
	}
}

func TestNewPoint(t *testing.T) {
	_, err := NewPoint(math.Inf(1), 0)
	require.ErrorIs(t, err, ErrInvalidPoint)

	p, err := NewPoint(-180, 90)
	require.NoError(t, err)
	assert.True(t, p.Valid())
}

func TestHaversine(t *testing.T) {
	paris := Point{Lng: 2.3522, Lat: 48.8566}
	london := Point{Lng: -0.1278, Lat: 51.5074}

	assert.InDelta(t, 343_500, Haversine(paris, london), 1_000)
	assert.Equal(t, Haversine(paris, london), Haversine(london, paris))
	assert.Zero(t, Haversine(paris, paris))

	antipode := Point{Lng: 180, Lat: 0}
	assert.InDelta(t, math.Pi*EarthRadiusMeters, Haversine(Point{}, antipode), 1)
}
