package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	h "geoevents/internal/delivery/http/helpers"
	"geoevents/internal/delivery/http/middleware"
	"geoevents/internal/domain"
)

const (
	// multipartMemory is the part of a multipart body kept in memory; the rest spills to disk.
	multipartMemory = 8 << 20
	// formOverhead is allowed on top of the image limit for the text fields and boundaries.
	formOverhead = 1 << 20
	sniffLen     = 512
)

// EventForm holds the text fields of a create or update form.
type EventForm struct {
	Title       string `form:"title" validate:"required"`
	EventDate   string `form:"event_date" validate:"required"`
	Description string `form:"description"`
	Location    string `form:"location" validate:"required"`
	Category    string `form:"category" validate:"omitempty,oneof=Concert Exhibition Sports Workshop Conference Other"`
}

// Validate implements Validator.
func (f EventForm) Validate() []string {
	return h.ValidateStruct(f)
}

func (f EventForm) input(img *domain.ImageUpload) domain.EventInput {
	return domain.EventInput{
		Title:       f.Title,
		EventDate:   f.EventDate,
		Description: f.Description,
		Location:    f.Location,
		Category:    f.Category,
		Image:       img,
	}
}

// DeleteEventRequest is the optional JSON body of DELETE /events. The id may
// be a number or a numeric string.
type DeleteEventRequest struct {
	ID json.Number `json:"id" swaggertype:"integer"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, maxUploadBytes int64) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
	}
}

// GetEvents godoc
// @Summary List events or fetch one
// @Description With id, returns that event. Otherwise returns a filtered, sorted page of events with the total number of matches. lat and lng enable the radius filter (metres, default 10000) and distance-asc ordering; each listed event then carries its distance in metres. myEvents=true requires a bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id query int false "Event id"
// @Param title query string false "Case-insensitive title substring"
// @Param startDate query string false "Earliest event date (ISO-8601)"
// @Param endDate query string false "Latest event date (ISO-8601)"
// @Param category query string false "Category" Enums(Concert, Exhibition, Sports, Workshop, Conference, Other)
// @Param myEvents query bool false "Only the caller's events"
// @Param lat query number false "Latitude of the search origin"
// @Param lng query number false "Longitude of the search origin"
// @Param radius query number false "Search radius in metres" default(10000)
// @Param sortOrder query string false "Ordering" Enums(date-asc, date-desc, distance-asc) default(date-asc)
// @Param limit query int false "Page size" default(5)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} EventListResponse "list form"
// @Success 200 {object} EventResponse "single event when id is given"
// @Failure 400 {object} helpers.APIError "bad_request"
// @Failure 401 {object} helpers.APIError "unauthorized"
// @Failure 404 {object} helpers.APIError "not_found"
// @Failure 500 {object} helpers.APIError "internal_error"
// @Router /events [get]
func (c *EventController) GetEvents(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("id") {
		c.getEvent(w, r)
		return
	}

	filter, err := h.ParseEventFilter(r)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	callerID, _ := middleware.UserIDFromContext(r.Context())
	page, err := c.Service.ListEvents(r.Context(), filter, callerID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, toEventListResponse(page, filter.Origin))
}

func (c *EventController) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r.URL.Query().Get("id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the caller. event_date is stored in UTC at minute precision. location is a WKT point "POINT(lng lat)". category defaults to Other. An optional image is uploaded to the media host.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param event_date formData string true "Event date (ISO-8601)"
// @Param description formData string false "Description"
// @Param location formData string true "WKT point, e.g. POINT(13.4 52.5)"
// @Param category formData string false "Category" Enums(Concert, Exhibition, Sports, Workshop, Conference, Other)
// @Param image formData file false "Image file"
// @Success 201 {object} EventResponse
// @Failure 400 {object} helpers.APIError "bad_request"
// @Failure 401 {object} helpers.APIError "unauthorized"
// @Failure 413 {object} helpers.APIError "payload_too_large"
// @Failure 502 {object} helpers.APIError "upstream_failure"
// @Failure 500 {object} helpers.APIError "internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	defer removeMultipart(r)

	form := readEventForm(r)
	if !h.RunValidator(w, form) {
		return
	}
	img, closeImg, ok := c.readImage(w, r)
	if !ok {
		return
	}
	defer closeImg()

	event, err := c.Service.CreateEvent(r.Context(), callerID, form.input(img))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, toEventResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the fields of an event the caller organizes. The stored image is kept unless a new one is supplied. Missing and foreign events are both reported as 403.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id formData int true "Event id"
// @Param title formData string true "Title"
// @Param event_date formData string true "Event date (ISO-8601)"
// @Param description formData string false "Description"
// @Param location formData string true "WKT point, e.g. POINT(13.4 52.5)"
// @Param category formData string false "Category" Enums(Concert, Exhibition, Sports, Workshop, Conference, Other)
// @Param image formData file false "Replacement image"
// @Success 200 {object} EventResponse
// @Failure 400 {object} helpers.APIError "bad_request"
// @Failure 401 {object} helpers.APIError "unauthorized"
// @Failure 403 {object} helpers.APIError "forbidden"
// @Failure 413 {object} helpers.APIError "payload_too_large"
// @Failure 502 {object} helpers.APIError "upstream_failure"
// @Failure 500 {object} helpers.APIError "internal_error"
// @Router /events [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	defer removeMultipart(r)

	rawID := r.PostFormValue("id")
	if rawID == "" {
		rawID = r.URL.Query().Get("id")
	}
	if strings.TrimSpace(rawID) == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "id is required")
		return
	}
	id, err := h.ParseID(rawID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	form := readEventForm(r)
	if !h.RunValidator(w, form) {
		return
	}
	img, closeImg, ok := c.readImage(w, r)
	if !ok {
		return
	}
	defer closeImg()

	event, err := c.Service.UpdateEvent(r.Context(), callerID, id, form.input(img))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event the caller organizes, together with its hosted image. The id comes from the query string or a JSON body. Failing to delete the image does not block the delete.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int false "Event id"
// @Param body body DeleteEventRequest false "Event id, when not in the query"
// @Success 200 {object} DeleteEventResponse
// @Failure 400 {object} helpers.APIError "bad_request"
// @Failure 401 {object} helpers.APIError "unauthorized"
// @Failure 403 {object} helpers.APIError "forbidden"
// @Failure 500 {object} helpers.APIError "internal_error"
// @Router /events [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	rawID := r.URL.Query().Get("id")
	if rawID == "" && r.Body != nil {
		var req DeleteEventRequest
		err := json.NewDecoder(io.LimitReader(r.Body, formOverhead)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body: "+err.Error())
			return
		}
		rawID = req.ID.String()
	}
	if rawID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "id is required")
		return
	}
	id, err := h.ParseID(rawID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}

	if err := c.Service.DeleteEvent(r.Context(), callerID, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DeleteEventResponse{Message: "Event deleted successfully", ID: id})
}

// parseForm reads a multipart or urlencoded body under the upload limit.
func (c *EventController) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes+formOverhead)
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.WriteJSONError(w, http.StatusRequestEntityTooLarge, h.ErrCodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid form: "+err.Error())
	return false
}

func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

func readEventForm(r *http.Request) EventForm {
	return EventForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		EventDate:   strings.TrimSpace(r.PostFormValue("event_date")),
		Description: r.PostFormValue("description"),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
	}
}

// readImage returns the optional "image" part with its sniffed content type.
// The returned close func is always safe to call.
func (c *EventController) readImage(w http.ResponseWriter, r *http.Request) (*domain.ImageUpload, func(), bool) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, true
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, true
	}
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid image: "+err.Error())
		return nil, noop, false
	}
	closeFile := func() { _ = file.Close() }

	if header.Size > c.MaxUploadBytes {
		closeFile()
		h.WriteJSONError(w, http.StatusRequestEntityTooLarge, h.ErrCodeTooLarge,
			fmt.Sprintf("image exceeds %d bytes", c.MaxUploadBytes))
		return nil, noop, false
	}
	contentType, body, err := sniff(file)
	if err != nil {
		closeFile()
		c.Logger.ErrorContext(r.Context(), "read image", "err", err)
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid image")
		return nil, noop, false
	}
	if !strings.HasPrefix(contentType, "image/") {
		closeFile()
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "image must be an image file")
		return nil, noop, false
	}
	return &domain.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        body,
	}, closeFile, true
}

// sniff detects the content type from the first bytes of f and rewinds it.
func sniff(f multipart.File) (string, io.Reader, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", nil, err
	}
	return http.DetectContentType(buf[:n]), f, nil
}
