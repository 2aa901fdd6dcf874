package domain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"geoevents/internal/geo"
)

// Category is the fixed set of event categories.
type Category string

const (
	CategoryConcert    Category = "Concert"
	CategoryExhibition Category = "Exhibition"
	CategorySports     Category = "Sports"
	CategoryWorkshop   Category = "Workshop"
	CategoryConference Category = "Conference"
	CategoryOther      Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryConcert,
	CategoryExhibition,
	CategorySports,
	CategoryWorkshop,
	CategoryConference,
	CategoryOther,
}

// ParseCategory maps an empty value to CategoryOther and rejects anything
// outside Categories.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
}

// Event is a location-tagged happening owned by its organizer.
type Event struct {
	ID             int64
	Title          string
	EventDate      time.Time
	Description    string
	Location       geo.Point
	Category       Category
	ImageURL       string
	OrganizerID    int64
	OrganizerEmail string
	CreatedAt      time.Time
}

// EventInput carries the raw fields of a create or update request.
// Image is nil when no file was supplied.
type EventInput struct {
	Title       string
	EventDate   string
	Description string
	Location    string
	Category    string
	Image       *ImageUpload
}

// ImageUpload is an image file to hand to the media host.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SortOrder selects the ordering of a list query.
type SortOrder string

const (
	SortDateAsc     SortOrder = "date-asc"
	SortDateDesc    SortOrder = "date-desc"
	SortDistanceAsc SortOrder = "distance-asc"
)

// ParseSortOrder returns SortDateAsc for empty or unknown values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.TrimSpace(s)) {
	case SortDateDesc:
		return SortDateDesc
	case SortDistanceAsc:
		return SortDistanceAsc
	default:
		return SortDateAsc
	}
}

// DefaultRadiusMeters is applied when a geo filter has no explicit radius.
const DefaultRadiusMeters = 10000.0

// EventFilter is the set of optional predicates, ordering and page window of
// an event search.
type EventFilter struct {
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	// MyEvents asks for the caller's own events; the service resolves it
	// into OrganizerID.
	MyEvents    bool
	OrganizerID int64
	// Origin is set only when both coordinates were valid. Radius is nil when
	// the radius predicate must be skipped.
	Origin *geo.Point
	Radius *float64
	Sort   SortOrder
	Page   PaginationParams
}

// Validate rejects filters that could only ever match nothing by mistake.
func (f EventFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	return nil
}

// EffectiveSort falls back to date-asc when distance ordering has no origin.
func (f EventFilter) EffectiveSort() SortOrder {
	s := ParseSortOrder(string(f.Sort))
	if s == SortDistanceAsc && f.Origin == nil {
		return SortDateAsc
	}
	return s
}

// EventPage is one page of search results plus the total match count.
type EventPage struct {
	Events     []*Event
	TotalCount int
}

// eventDateLayouts are tried in order. Layouts without a zone are read as UTC.
var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses an ISO-8601 timestamp and returns it in UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidInput)
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
}

// NormalizeEventDate parses s and truncates it to the minute in UTC.
func NormalizeEventDate(s string) (time.Time, error) {
	t, err := ParseInstant(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Minute), nil
}

// EventRepository defines the interface for event storage.
// Update and Delete match on both id and organizer and return ErrNotFound
// when no row qualifies.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]*Event, int, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id, organizerID int64) error
}

// ImageStore uploads event images to an external media host and removes them.
type ImageStore interface {
	Upload(ctx context.Context, img ImageUpload) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// EventService defines the business logic for events. callerID is zero for
// anonymous requests.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter, callerID int64) (*EventPage, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, callerID int64, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, callerID, id int64, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, callerID, id int64) error
}
