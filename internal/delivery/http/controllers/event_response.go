package controllers

import (
	"time"

	"geoevents/internal/domain"
	"geoevents/internal/geo"
)

// timestampLayout renders instants in UTC with millisecond precision,
// e.g. 2025-06-01T20:00:00.000Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// EventResponse is the wire representation of an event.
type EventResponse struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	EventDate      string   `json:"event_date"`
	Description    string   `json:"description"`
	Location       string   `json:"location" example:"POINT(13.4 52.5)"`
	Category       string   `json:"category" enums:"Concert,Exhibition,Sports,Workshop,Conference,Other"`
	ImageURL       *string  `json:"image_url"`
	OrganizerID    int64    `json:"organizer_id"`
	OrganizerEmail string   `json:"organizer_email,omitempty"`
	CreatedAt      string   `json:"created_at"`
	Distance       *float64 `json:"distance,omitempty"`
}

// EventListResponse is one page of events plus the total number of matches.
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	TotalCount int             `json:"totalCount"`
}

// DeleteEventResponse acknowledges a delete.
type DeleteEventResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func toEventResponse(e *domain.Event) EventResponse {
	resp := EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		EventDate:      formatTimestamp(e.EventDate),
		Description:    e.Description,
		Location:       e.Location.WKT(),
		Category:       string(e.Category),
		OrganizerID:    e.OrganizerID,
		OrganizerEmail: e.OrganizerEmail,
		CreatedAt:      formatTimestamp(e.CreatedAt),
	}
	if e.ImageURL != "" {
		url := e.ImageURL
		resp.ImageURL = &url
	}
	return resp
}

// toEventListResponse adds the haversine distance from origin to each event
// when origin is set.
func toEventListResponse(page *domain.EventPage, origin *geo.Point) EventListResponse {
	out := EventListResponse{
		Events:     make([]EventResponse, 0, len(page.Events)),
		TotalCount: page.TotalCount,
	}
	for _, e := range page.Events {
		resp := toEventResponse(e)
		if origin != nil {
			d := geo.Haversine(*origin, e.Location)
			resp.Distance = &d
		}
		out.Events = append(out.Events, resp)
	}
	return out
}
