package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"geoevents/internal/domain"
	"geoevents/internal/geo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{"id", "title", "event_date", "description", "st_astext", "category", "image_url", "organizer_id", "email", "created_at"}

var (
	jazzDate    = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	jazzCreated = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
)

func jazzNightRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow(int64(1), "Jazz Night", jazzDate, nil, "POINT(2.35 48.85)", "Other", nil, int64(7), "org@example.com", jazzCreated)
}

func jazzNight() *domain.Event {
	return &domain.Event{
		ID:             1,
		Title:          "Jazz Night",
		EventDate:      jazzDate,
		Location:       geo.Point{Lng: 2.35, Lat: 48.85},
		Category:       domain.CategoryOther,
		OrganizerID:    7,
		OrganizerEmail: "org@example.com",
		CreatedAt:      jazzCreated,
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	origin := &geo.Point{Lng: 2.35, Lat: 48.85}

	tests := []struct {
		name      string
		filter    domain.EventFilter
		mock      func(mock sqlmock.Sqlmock)
		wantTotal int
		wantLen   int
		wantErr   bool
	}{
		{
			name:   "count and page share predicates",
			filter: domain.EventFilter{Category: "Other", Page: domain.PaginationParams{Limit: 5, Offset: 0}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events e JOIN users u ON u.id = e.organizer_id WHERE e.category = \$1`).
					WithArgs("Other").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
				mock.ExpectQuery(`SELECT e.id, e.title, .* WHERE e.category = \$1 ORDER BY e.event_date ASC, e.id ASC LIMIT \$2 OFFSET \$3`).
					WithArgs("Other", 5, 0).
					WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))
			},
			wantTotal: 12,
			wantLen:   1,
		},
		{
			name:   "distance sort binds origin after filter args",
			filter: domain.EventFilter{Origin: origin, Radius: floatPtr(10000), Sort: domain.SortDistanceAsc, Page: domain.PaginationParams{Limit: 2, Offset: 4}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events e .* ST_DWithin`).
					WithArgs(2.35, 48.85, 10000.0).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
				mock.ExpectQuery(`ORDER BY ST_Distance\(e.location, ST_SetSRID\(ST_MakePoint\(\$4, \$5\), 4326\)::geography\) ASC, e.id ASC LIMIT \$6 OFFSET \$7`).
					WithArgs(2.35, 48.85, 10000.0, 2.35, 48.85, 2, 4).
					WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))
			},
			wantTotal: 5,
			wantLen:   1,
		},
		{
			name:   "no matches skips page query",
			filter: domain.EventFilter{Title: "nothing", Page: domain.PaginationParams{Limit: 5}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)`).
					WithArgs("%nothing%").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			wantTotal: 0,
			wantLen:   0,
		},
		{
			name:   "count error",
			filter: domain.EventFilter{Page: domain.PaginationParams{Limit: 5}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name:   "malformed stored location",
			filter: domain.EventFilter{Page: domain.PaginationParams{Limit: 5}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectQuery(`SELECT e.id`).
					WillReturnRows(sqlmock.NewRows(eventRowColumns).
						AddRow(int64(1), "Broken", jazzDate, nil, "POLYGON EMPTY", "Other", nil, int64(7), "org@example.com", jazzCreated))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			events, total, err := repo.List(ctx, tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			require.NotNil(t, events)
			assert.Len(t, events, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.title, e.event_date, e.description, ST_AsText\(e.location\).* WHERE e.id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))
			},
			want: jazzNight(),
		},
		{
			name: "optional columns populated",
			id:   2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE e.id = \$1`).
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows(eventRowColumns).
						AddRow(int64(2), "Expo", jazzDate, "Paintings", "POINT(13.4 52.5)", "Exhibition", "https://media.example.com/events/a.png", int64(3), "art@example.com", jazzCreated))
			},
			want: &domain.Event{
				ID:             2,
				Title:          "Expo",
				EventDate:      jazzDate,
				Description:    "Paintings",
				Location:       geo.Point{Lng: 13.4, Lat: 52.5},
				Category:       domain.CategoryExhibition,
				ImageURL:       "https://media.example.com/events/a.png",
				OrganizerID:    3,
				OrganizerEmail: "art@example.com",
				CreatedAt:      jazzCreated,
			},
		},
		{
			name: "not found",
			id:   404,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE e.id = \$1`).
					WithArgs(int64(404)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO events \(title, event_date, description, location, category, image_url, organizer_id\)`).
		WithArgs("Jazz Night", jazzDate, nil, "POINT(2.35 48.85)", "Other", nil, int64(7)).
		WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))

	event := &domain.Event{
		Title:       "Jazz Night",
		EventDate:   jazzDate,
		Location:    geo.Point{Lng: 2.35, Lat: 48.85},
		Category:    domain.CategoryOther,
		OrganizerID: 7,
	}
	require.NoError(t, NewEventRepository(db).Create(ctx, event))
	assert.Equal(t, jazzNight(), event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		imageURL string
		mock     func(mock sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name: "keeps image when none supplied",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events\s+SET title = \$1,.*image_url = COALESCE\(\$6, image_url\)\s+WHERE id = \$7 AND organizer_id = \$8`).
					WithArgs("Jazz Night", jazzDate, nil, "POINT(2.35 48.85)", "Other", nil, int64(1), int64(7)).
					WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))
			},
		},
		{
			name:     "replaces image",
			imageURL: "https://media.example.com/events/new.png",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events`).
					WithArgs("Jazz Night", jazzDate, nil, "POINT(2.35 48.85)", "Other", "https://media.example.com/events/new.png", int64(1), int64(7)).
					WillReturnRows(jazzNightRow(sqlmock.NewRows(eventRowColumns)))
			},
		},
		{
			name: "missing or foreign row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events`).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			event := jazzNight()
			event.OrganizerEmail = ""
			event.ImageURL = tt.imageURL
			err = NewEventRepository(db).Update(ctx, event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "org@example.com", event.OrganizerEmail)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND organizer_id = \$2`).
					WithArgs(int64(1), int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nothing deleted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).
					WithArgs(int64(1), int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewEventRepository(db).Delete(ctx, 1, 7)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
