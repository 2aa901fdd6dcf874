package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"geoevents/internal/domain"
	"geoevents/internal/geo"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e           domain.Event
		description sql.NullString
		location    string
		category    string
		imageURL    sql.NullString
	)
	err := row.Scan(&e.ID, &e.Title, &e.EventDate, &description, &location, &category, &imageURL, &e.OrganizerID, &e.OrganizerEmail, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	point, err := geo.ParseWKT(location)
	if err != nil {
		return nil, fmt.Errorf("event %d location: %w", e.ID, err)
	}
	e.Location = point
	e.Description = description.String
	e.Category = domain.Category(category)
	e.ImageURL = imageURL.String
	e.EventDate = e.EventDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// List runs the count query and, when anything matched, the page query.
// filter.Page is expected to be normalized by the caller.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	search := buildEventSearch(filter)

	countSQL, countArgs := search.countQuery()
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	events := []*domain.Event{}
	if total == 0 {
		return events, 0, nil
	}

	dataSQL, dataArgs := search.dataQuery(filter.Page)
	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate events: %w", err)
	}
	return events, total, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM ` + eventSource + ` WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Create inserts the event and refreshes it from the stored row, including
// the organizer email.
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		WITH e AS (
			INSERT INTO events (title, event_date, description, location, category, image_url, organizer_id)
			VALUES ($1, $2, $3, ST_GeomFromText($4, 4326)::geography, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + eventColumns + `
		FROM e JOIN users u ON u.id = e.organizer_id
	`
	stored, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		event.Title,
		event.EventDate.UTC(),
		nullString(event.Description),
		event.Location.WKT(),
		string(event.Category),
		nullString(event.ImageURL),
		event.OrganizerID,
	))
	if err != nil {
		return err
	}
	*event = *stored
	return nil
}

// Update replaces every mutable field of the organizer's event. An empty
// ImageURL keeps the stored image.
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		WITH e AS (
			UPDATE events
			SET title = $1,
				event_date = $2,
				description = $3,
				location = ST_GeomFromText($4, 4326)::geography,
				category = $5,
				image_url = COALESCE($6, image_url)
			WHERE id = $7 AND organizer_id = $8
			RETURNING *
		)
		SELECT ` + eventColumns + `
		FROM e JOIN users u ON u.id = e.organizer_id
	`
	stored, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		event.Title,
		event.EventDate.UTC(),
		nullString(event.Description),
		event.Location.WKT(),
		string(event.Category),
		nullString(event.ImageURL),
		event.ID,
		event.OrganizerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	*event = *stored
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id, organizerID int64) error {
	query := `DELETE FROM events WHERE id = $1 AND organizer_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, organizerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
