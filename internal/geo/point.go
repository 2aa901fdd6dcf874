// Package geo holds the small amount of geometry the service needs: WKT points
// and great-circle distance.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = 6371 * 1000.0

// ErrInvalidPoint is returned for malformed WKT or out-of-range coordinates.
var ErrInvalidPoint = errors.New("invalid point")

// Point is a WGS84 coordinate. Lng is the X axis and Lat the Y axis, matching
// WKT ordering.
type Point struct {
	Lng float64
	Lat float64
}

// NewPoint validates the coordinates and returns a Point.
func NewPoint(lng, lat float64) (Point, error) {
	p := Point{Lng: lng, Lat: lat}
	if !p.Valid() {
		return Point{}, fmt.Errorf("%w: lng=%v lat=%v", ErrInvalidPoint, lng, lat)
	}
	return p, nil
}

// Valid reports whether both coordinates are finite and inside WGS84 bounds.
func (p Point) Valid() bool {
	if !finite(p.Lng) || !finite(p.Lat) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// WKT renders the point as POINT(lng lat) with the shortest exact decimal form.
func (p Point) WKT() string {
	return "POINT(" + formatCoord(p.Lng) + " " + formatCoord(p.Lat) + ")"
}

func (p Point) String() string { return p.WKT() }

// ParseWKT parses a WKT point such as "POINT(13.4 52.5)". The keyword is
// case-insensitive and whitespace around the parentheses is ignored.
func ParseWKT(s string) (Point, error) {
	s = strings.TrimSpace(s)
	const keyword = "POINT"
	if len(s) < len(keyword) || !strings.EqualFold(s[:len(keyword)], keyword) {
		return Point{}, fmt.Errorf("%w: %q is not a POINT", ErrInvalidPoint, s)
	}
	body := strings.TrimSpace(s[len(keyword):])
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return Point{}, fmt.Errorf("%w: %q missing parentheses", ErrInvalidPoint, s)
	}
	coords := strings.Fields(body[1 : len(body)-1])
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("%w: %q must have exactly two coordinates", ErrInvalidPoint, s)
	}
	lng, err := strconv.ParseFloat(coords[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude %q", ErrInvalidPoint, coords[0])
	}
	lat, err := strconv.ParseFloat(coords[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude %q", ErrInvalidPoint, coords[1])
	}
	return NewPoint(lng, lat)
}

// Haversine returns the great-circle distance between a and b in metres.
func Haversine(a, b Point) float64 {
	const rad = math.Pi / 180
	dLat := (b.Lat - a.Lat) * rad
	dLng := (b.Lng - a.Lng) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*rad)*math.Cos(b.Lat*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
