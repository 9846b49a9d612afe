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

type EventRequestService interface {
	Submit(ctx context.Context, principal domain.User, req domain.EventRequest) (domain.EventRequest, error)
	Edit(ctx context.Context, principal domain.User, requestID uint, updated domain.EventRequest) (domain.EventRequest, error)
	Review(ctx context.Context, principal domain.User, requestID uint, status domain.RequestStatus, note string) (domain.EventRequest, error)
	Delete(ctx context.Context, principal domain.User, requestID uint) error
	Get(ctx context.Context, principal domain.User, requestID uint) (domain.EventRequest, error)
	List(ctx context.Context, principal domain.User, status domain.RequestStatus, page, limit int) ([]domain.EventRequest, int64, error)
}

type EventRequestHandler struct {
	svc  EventRequestService
	uSvc UserService
}

func NewEventRequestHandler(svc EventRequestService, uSvc UserService) *EventRequestHandler {
	return &EventRequestHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func eventRequestFromInput(input request.SubmitEventRequestRequest) (domain.EventRequest, error) {
	proposedDate, err := time.Parse("02/01/2006", input.ProposedDate)
	if err != nil {
		return domain.EventRequest{}, err
	}

	return domain.EventRequest{
		Title:            input.Title,
		Description:      input.Description,
		ProposedDate:     proposedDate,
		Location:         input.Location,
		ExpectedCapacity: input.ExpectedCapacity,
		MaxSpeakers:      input.MaxSpeakers,
		Price:            input.Price,
		Requirements:     input.Requirements,
		Justification:    input.Justification,
	}, nil
}

// HandleSubmit godoc
// @Summary      Submit an event proposal
// @Description  School admins propose events for their school. Proposals start pending.
// @Tags         event-requests
// @Accept       json
// @Produce      json
// @Param        input  body      request.SubmitEventRequestRequest  true  "proposal details"
// @Success      201    {object}  domain.EventRequest
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /event-requests [post]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleSubmit(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SubmitEventRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req, err := eventRequestFromInput(input)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), user, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrNotAssociated):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleEdit godoc
// @Summary      Edit a pending event proposal
// @Description  Editing resets the proposal to pending for a fresh review.
// @Tags         event-requests
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                                true  "request ID"
// @Param        input      body      request.SubmitEventRequestRequest  true  "proposal details"
// @Success      200        {object}  domain.EventRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /event-requests/{requestID} [put]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleEdit(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.SubmitEventRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req, err := eventRequestFromInput(input)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.Edit(ctx.Request.Context(), user, requestID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event request", "requestID", requestID))
		case errors.Is(err, service.ErrNotRequestOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrRequestFinalized):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleEdit -> h.svc.Edit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleReview godoc
// @Summary      Review an event proposal
// @Description  Super admins approve, reject or send back a proposal. Approval publishes the event.
// @Tags         event-requests
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                           true  "request ID"
// @Param        input      body      request.ReviewRequestRequest  true  "review decision"
// @Success      200        {object}  domain.EventRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /event-requests/{requestID}/review [put]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.ReviewRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reviewed, err := h.svc.Review(ctx.Request.Context(), user, requestID, domain.RequestStatus(input.Status), input.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event request", "requestID", requestID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidReviewStatus), errors.Is(err, service.ErrRequestNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleReview -> h.svc.Review -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, reviewed)
}

// HandleDelete godoc
// @Summary      Delete an event proposal
// @Description  Approved proposals cannot be deleted, the event already exists.
// @Tags         event-requests
// @Produce      json
// @Param        requestID  path  int  true  "request ID"
// @Success      204        "no content"
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /event-requests/{requestID} [delete]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleDelete(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), user, requestID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event request", "requestID", requestID))
		case errors.Is(err, service.ErrNotRequestOwner), errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrRequestApproved):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleDelete -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGet godoc
// @Summary      Get an event proposal
// @Tags         event-requests
// @Produce      json
// @Param        requestID  path      int  true  "request ID"
// @Success      200        {object}  domain.EventRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /event-requests/{requestID} [get]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleGet(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req, err := h.svc.Get(ctx.Request.Context(), user, requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event request", "requestID", requestID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGet -> h.svc.Get -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, req)
}

// HandleList godoc
// @Summary      List event proposals
// @Description  Super admins see every proposal, school admins their own school's.
// @Tags         event-requests
// @Produce      json
// @Param        status  query     string  false  "filter by status"
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Success      200     {object}  response.ListResponse[domain.EventRequest]
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /event-requests [get]
// @Security     BearerAuth
func (h *EventRequestHandler) HandleList(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, limit := parsePagination(ctx)
	status := domain.RequestStatus(ctx.Query("status"))

	requests, total, err := h.svc.List(ctx.Request.Context(), user, status, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrNotAssociated):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleList -> h.svc.List -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(requests, total, page, limit))
}
