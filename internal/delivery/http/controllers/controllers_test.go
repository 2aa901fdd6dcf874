package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"geoevents/internal/domain"
	"geoevents/internal/geo"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	listResult *domain.EventPage
	listErr    error
	getResult  *domain.Event
	getErr     error
	createErr  error
	updateErr  error
	deleteErr  error

	lastFilter    domain.EventFilter
	lastCallerID  int64
	lastID        int64
	lastInput     domain.EventInput
	lastImageData []byte
}

func (f *fakeEventService) ListEvents(_ context.Context, filter domain.EventFilter, callerID int64) (*domain.EventPage, error) {
	f.lastFilter = filter
	f.lastCallerID = callerID
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult == nil {
		return &domain.EventPage{Events: []*domain.Event{}}, nil
	}
	return f.listResult, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) record(callerID int64, in domain.EventInput) {
	f.lastCallerID = callerID
	f.lastInput = in
	if in.Image != nil {
		f.lastImageData, _ = io.ReadAll(in.Image.Body)
	}
}

func (f *fakeEventService) CreateEvent(_ context.Context, callerID int64, in domain.EventInput) (*domain.Event, error) {
	f.record(callerID, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return eventFromFakeInput(42, callerID, in), nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, callerID, id int64, in domain.EventInput) (*domain.Event, error) {
	f.record(callerID, in)
	f.lastID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return eventFromFakeInput(id, callerID, in), nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, callerID, id int64) error {
	f.lastCallerID = callerID
	f.lastID = id
	return f.deleteErr
}

func eventFromFakeInput(id, callerID int64, in domain.EventInput) *domain.Event {
	date, _ := domain.NormalizeEventDate(in.EventDate)
	loc, _ := geo.ParseWKT(in.Location)
	cat, _ := domain.ParseCategory(in.Category)
	e := &domain.Event{
		ID:          id,
		Title:       in.Title,
		EventDate:   date,
		Description: in.Description,
		Location:    loc,
		Category:    cat,
		OrganizerID: callerID,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if in.Image != nil {
		e.ImageURL = "https://media.test/events/abc123"
	}
	return e
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	result     *domain.AuthResult
	err        error
	lastAction string
	lastEmail  string
}

func (f *fakeAuthService) Register(_ context.Context, email, _ string) (*domain.AuthResult, error) {
	f.lastAction, f.lastEmail = "register", email
	return f.result, f.err
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (*domain.AuthResult, error) {
	f.lastAction, f.lastEmail = "login", email
	return f.result, f.err
}
