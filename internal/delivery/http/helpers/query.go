package helpers

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"geoevents/internal/domain"
	"geoevents/internal/geo"
)

// ParsePagination reads limit and offset from the query string. Missing or
// malformed values become zero and are defaulted by the service.
func ParsePagination(q url.Values) domain.PaginationParams {
	var p domain.PaginationParams
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		p.Offset = v
	}
	return p
}

// ParseEventFilter builds a search filter from GET /events query parameters.
// Numeric parameters are lenient: malformed values are treated as absent.
// Malformed dates are rejected with domain.ErrInvalidInput.
func ParseEventFilter(r *http.Request) (domain.EventFilter, error) {
	q := r.URL.Query()
	f := domain.EventFilter{
		Title:    strings.TrimSpace(q.Get("title")),
		Category: strings.TrimSpace(q.Get("category")),
		MyEvents: parseBool(q.Get("myEvents")),
		Sort:     domain.ParseSortOrder(firstNonEmpty(q.Get("sortOrder"), q.Get("sort"))),
		Page:     ParsePagination(q),
	}

	if s := q.Get("startDate"); s != "" {
		t, err := domain.ParseInstant(s)
		if err != nil {
			return domain.EventFilter{}, fmt.Errorf("startDate: %w", err)
		}
		f.StartDate = &t
	}
	if s := q.Get("endDate"); s != "" {
		t, err := domain.ParseInstant(s)
		if err != nil {
			return domain.EventFilter{}, fmt.Errorf("endDate: %w", err)
		}
		f.EndDate = &t
	}

	lat, latOK := parseFinite(q.Get("lat"))
	lng, lngOK := parseFinite(q.Get("lng"))
	if latOK && lngOK {
		if p, err := geo.NewPoint(lng, lat); err == nil {
			f.Origin = &p
			if radius, ok := parseRadius(q.Get("radius")); ok {
				f.Radius = &radius
			}
		}
	}
	return f, nil
}

// parseRadius defaults an absent radius and rejects negative or malformed ones.
func parseRadius(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return domain.DefaultRadiusMeters, true
	}
	v, ok := parseFinite(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseID parses a positive integer event id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}
