package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/service"
)

type EventService interface {
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListPublished(ctx context.Context, page, limit int) ([]domain.Event, int64, error)
	ListBySchool(ctx context.Context, schoolID uint, page, limit int) ([]domain.Event, int64, error)
	CreateEvent(ctx context.Context, principal domain.User, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, principal domain.User, eventID uint, updated domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, principal domain.User, eventID uint) error
	Register(ctx context.Context, principal domain.User, eventID uint) (domain.EventRegistration, error)
	Unregister(ctx context.Context, principal domain.User, eventID uint) error
	ApplySpeaker(ctx context.Context, principal domain.User, eventID uint, topic string, duration int) (domain.EventSpeaker, error)
	ReviewSpeaker(ctx context.Context, principal domain.User, eventID, speakerID uint, status domain.SpeakerStatus) (domain.EventSpeaker, error)
	GetSpeakers(ctx context.Context, eventID uint) ([]domain.EventSpeaker, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListEvents godoc
// @Summary      List published events
// @Tags         events
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.ListResponse[domain.Event]
// @Failure      500    {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	events, total, err := h.svc.ListPublished(ctx.Request.Context(), page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListPublished -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(events, total, page, limit))
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event directly
// @Description  School admins create events for their own school, super admins for any school.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse("02/01/2006", input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	event := domain.Event{
		HostSchoolID: input.SchoolID,
		OrganizerID:  user.ID,
		Title:        input.Title,
		Description:  input.Description,
		Date:         date,
		Location:     input.Location,
		Capacity:     input.Capacity,
		MaxSpeakers:  input.MaxSpeakers,
		Price:        input.Price,
		Requirements: input.Requirements,
		Status:       domain.EventPublished,
		IsPublic:     isPublic,
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), user, event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrNotAssociated):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event ID"
// @Param        input    body      request.UpdateEventRequest  true  "event details"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse("02/01/2006", input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	current, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	isPublic := current.IsPublic
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	updated := domain.Event{
		Title:        input.Title,
		Description:  input.Description,
		Date:         date,
		Location:     input.Location,
		Capacity:     input.Capacity,
		MaxSpeakers:  input.MaxSpeakers,
		Price:        input.Price,
		Requirements: input.Requirements,
		Status:       domain.EventStatus(input.Status),
		IsPublic:     isPublic,
	}

	saved, err := h.svc.UpdateEvent(ctx.Request.Context(), user, eventID, updated)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      204      "no content"
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), user, eventID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Students register for a published event while seats remain.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      201      {object}  domain.EventRegistration
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), user, eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventFull),
			errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrEventNotPublished):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleUnregister godoc
// @Summary      Cancel an event registration
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      204      "no content"
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleUnregister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Unregister(ctx.Request.Context(), user, eventID); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUnregister -> h.svc.Unregister -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetSpeakers godoc
// @Summary      List an event's speaker slots
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.EventSpeaker
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/speakers [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetSpeakers(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	speakers, err := h.svc.GetSpeakers(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSpeakers -> h.svc.GetSpeakers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, speakers)
}

// HandleApplySpeaker godoc
// @Summary      Apply to speak at an event
// @Description  Adds a pending speaker slot directly onto the event.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                                  true  "event ID"
// @Param        input    body      request.SubmitSpeakerRequestRequest  true  "application details"
// @Success      201      {object}  domain.EventSpeaker
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/apply-speaker [post]
// @Security     BearerAuth
func (h *EventHandler) HandleApplySpeaker(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.EditSpeakerRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	speaker, err := h.svc.ApplySpeaker(ctx.Request.Context(), user, eventID, input.Topic, input.Duration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotPublished), errors.Is(err, service.ErrDuplicateSpeaker):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleApplySpeaker -> h.svc.ApplySpeaker -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, speaker)
}

// HandleReviewSpeaker godoc
// @Summary      Approve or reject a speaker slot
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID    path      int                           true  "event ID"
// @Param        speakerID  path      int                           true  "speaker user ID"
// @Param        input      body      request.ReviewSpeakerRequest  true  "review decision"
// @Success      200        {object}  domain.EventSpeaker
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/speakers/{speakerID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleReviewSpeaker(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	speakerID, err := parseIDParam(ctx, "speakerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.ReviewSpeakerRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	speaker, err := h.svc.ReviewSpeaker(ctx.Request.Context(), user, eventID, speakerID, domain.SpeakerStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrSpeakerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("speaker", "speakerID", speakerID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidReviewStatus), errors.Is(err, service.ErrSpeakerCapacity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleReviewSpeaker -> h.svc.ReviewSpeaker -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, speaker)
}
