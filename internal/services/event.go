package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"geoevents/internal/domain"
	"geoevents/internal/geo"
)

// defaultImageDeleteTimeout bounds a best-effort media host delete when
// EventServiceOptions leaves ImageDeleteTimeout unset.
const defaultImageDeleteTimeout = 10 * time.Second

// EventServiceOptions tunes paging and per-call deadlines.
type EventServiceOptions struct {
	DefaultPageSize    int
	MaxPageSize        int
	Timeout            time.Duration
	ImageDeleteTimeout time.Duration
}

type eventService struct {
	eventRepo      domain.EventRepository
	images         domain.ImageStore
	logger         *slog.Logger
	defaultPage    int
	maxPage        int
	contextTimeout time.Duration
	imageTimeout   time.Duration
}

func NewEventService(eventRepo domain.EventRepository, images domain.ImageStore, logger *slog.Logger, opts EventServiceOptions) domain.EventService {
	imageTimeout := opts.ImageDeleteTimeout
	if imageTimeout <= 0 {
		imageTimeout = defaultImageDeleteTimeout
	}
	return &eventService{
		eventRepo:      eventRepo,
		images:         images,
		logger:         logger,
		defaultPage:    opts.DefaultPageSize,
		maxPage:        opts.MaxPageSize,
		contextTimeout: opts.Timeout,
		imageTimeout:   imageTimeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, callerID int64) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.OrganizerID = 0
	if filter.MyEvents {
		if callerID == 0 {
			return nil, fmt.Errorf("%w: myEvents requires authentication", domain.ErrUnauthorized)
		}
		filter.OrganizerID = callerID
	}
	filter.Page = filter.Page.Normalize(s.defaultPage, s.maxPage)

	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return &domain.EventPage{Events: events, TotalCount: total}, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// eventFromInput validates the raw fields shared by create and update.
func eventFromInput(in domain.EventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.EventDate) == "" {
		return nil, fmt.Errorf("%w: event_date is required", domain.ErrInvalidInput)
	}
	date, err := domain.NormalizeEventDate(in.EventDate)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	location, err := geo.ParseWKT(in.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		Title:       title,
		EventDate:   date,
		Description: strings.TrimSpace(in.Description),
		Location:    location,
		Category:    category,
	}, nil
}

// CreateEvent uploads the image first and removes it again if the insert fails.
func (s *eventService) CreateEvent(ctx context.Context, callerID int64, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == 0 {
		return nil, domain.ErrUnauthorized
	}
	event, err := eventFromInput(in)
	if err != nil {
		return nil, err
	}
	event.OrganizerID = callerID

	if in.Image != nil {
		url, err := s.images.Upload(ctx, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		event.ImageURL = url
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.discardImage(ctx, event.ImageURL, "create failed")
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// ownedEvent loads an event and checks that callerID organizes it. Missing
// and foreign events both yield ErrForbidden.
func (s *eventService) ownedEvent(ctx context.Context, callerID, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID, id int64, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == 0 {
		return nil, domain.ErrUnauthorized
	}
	event, err := eventFromInput(in)
	if err != nil {
		return nil, err
	}
	current, err := s.ownedEvent(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	event.ID = id
	event.OrganizerID = callerID

	var uploaded string
	if in.Image != nil {
		uploaded, err = s.images.Upload(ctx, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		event.ImageURL = uploaded
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.discardImage(ctx, uploaded, "update failed")
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if uploaded != "" && current.ImageURL != "" && current.ImageURL != uploaded {
		s.discardImage(ctx, current.ImageURL, "image replaced")
	}
	return event, nil
}

// DeleteEvent removes the row, then the hosted image. Image failures are
// logged and do not fail the delete.
func (s *eventService) DeleteEvent(ctx context.Context, callerID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == 0 {
		return domain.ErrUnauthorized
	}
	event, err := s.ownedEvent(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.discardImage(ctx, event.ImageURL, "event deleted")
	return nil
}

// discardImage deletes a hosted image on a best-effort basis. It survives
// cancellation of the request context but runs under its own deadline.
func (s *eventService) discardImage(ctx context.Context, url, reason string) {
	if url == "" {
		return
	}
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.imageTimeout)
	defer cancel()
	if err := s.images.Delete(dctx, url); err != nil {
		s.logger.WarnContext(ctx, "image delete failed", "url", url, "reason", reason, "err", err)
	}
}
