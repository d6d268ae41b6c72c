package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

// EventsPath is the collection path; created events are located under it.
const EventsPath = "/api/dev-events"

// EventViewSuccessResponse is the success envelope for a single event.
type EventViewSuccessResponse struct {
	Data  EventView         `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for GET /api/dev-events.
type EventListSuccessResponse struct {
	Data  []EventView       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerViewSuccessResponse is the success envelope for a single speaker.
type SpeakerViewSuccessResponse struct {
	Data  SpeakerView       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerListSuccessResponse is the success envelope for a speaker import.
type SpeakerListSuccessResponse struct {
	Data  []SpeakerView     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List active events
// @Description Returns every event that has not been soft-deleted, oldest first. Speakers are not included.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventViews(events))
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event with its speakers. Soft-deleted events are still returned, with isDeleted set.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventViewSuccessResponse "data contains the event and its speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventView(event))
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event. id and isDeleted are server-assigned; the new event has no speakers.
// @Tags events
// @Accept json
// @Produce json
// @Param event body EventInput true "Event data"
// @Success 201 {object} controllers.EventViewSuccessResponse "data contains the created event"
// @Header 201 {string} Location "URL of the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.toFields())
	if err != nil {
		c.writeServiceError(w, r, err, "")
		return
	}
	w.Header().Set("Location", EventsPath+"/"+event.ID)
	helpers.WriteJSONSuccess(w, http.StatusCreated, toEventView(event))
}

// UpdateEvent godoc
// @Summary Replace an event's fields
// @Description Overwrites title, description, startDate and endDate. Partial updates are not supported. isDeleted and speakers are unchanged.
// @Tags events
// @Accept json
// @Param id path string true "Event ID (UUID)"
// @Param event body EventInput true "Event data"
// @Success 204 "updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req EventInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateEvent(r.Context(), id, req.toFields()); err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEvent godoc
// @Summary Soft-delete an event
// @Description Marks the event as deleted. Deleting an already deleted event succeeds.
// @Tags events
// @Param id path string true "Event ID (UUID)"
// @Success 204 "deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSpeaker godoc
// @Summary Add a speaker to an event
// @Description Registers a speaker for the event in the path. Any eventId in the body is ignored. Deleted events still accept speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param speaker body SpeakerInput true "Speaker data"
// @Success 201 {object} controllers.SpeakerViewSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id}/speakers [post]
func (c *EventController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req SpeakerInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.AddSpeaker(r.Context(), id, req.toFields())
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSpeakerView(speaker))
}

// ImportSessionize godoc
// @Summary Import speakers from Sessionize
// @Description Fetches the Sessionize "All" view and adds every speaker to the event in one transaction.
// @Tags speakers
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param sessionizeID path string true "Sessionize endpoint ID"
// @Success 201 {object} controllers.SpeakerListSuccessResponse "data contains the imported speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id}/speakers/import/sessionize/{sessionizeID} [post]
func (c *EventController) ImportSessionize(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	sessionizeID := r.PathValue("sessionizeID")
	if sessionizeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionizeID")
		return
	}
	speakers, err := c.Service.ImportSessionizeSpeakers(r.Context(), id, sessionizeID)
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSpeakerViews(speakers))
}

// eventIDFromPath reads the {id} path value in canonical UUID form. A missing or non-UUID id is a 400.
func eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "id must be a UUID")
		return "", false
	}
	return parsed.String(), true
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "not found"
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		c.Logger.WarnContext(r.Context(), "upstream failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
