package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/service"
)

type SpeakerRequestService interface {
	Submit(ctx context.Context, principal domain.User, req domain.SpeakerRequest) (domain.SpeakerRequest, error)
	Edit(ctx context.Context, principal domain.User, requestID uint, updated domain.SpeakerRequest) (domain.SpeakerRequest, error)
	Review(ctx context.Context, principal domain.User, requestID uint, status domain.RequestStatus, note string) (domain.SpeakerRequest, error)
	Delete(ctx context.Context, principal domain.User, requestID uint) error
	Get(ctx context.Context, principal domain.User, requestID uint) (domain.SpeakerRequest, error)
	List(ctx context.Context, principal domain.User, eventID uint, status domain.RequestStatus, page, limit int) ([]domain.SpeakerRequest, int64, error)
}

type SpeakerRequestHandler struct {
	svc  SpeakerRequestService
	uSvc UserService
}

func NewSpeakerRequestHandler(svc SpeakerRequestService, uSvc UserService) *SpeakerRequestHandler {
	return &SpeakerRequestHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmit godoc
// @Summary      Apply to speak at an event
// @Description  Speakers apply to published events. Applications start pending.
// @Tags         speaker-requests
// @Accept       json
// @Produce      json
// @Param        input  body      request.SubmitSpeakerRequestRequest  true  "application details"
// @Success      201    {object}  domain.SpeakerRequest
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /speaker-requests [post]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleSubmit(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SubmitSpeakerRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), user, domain.SpeakerRequest{
		EventID:  input.EventID,
		Topic:    input.Topic,
		Duration: input.Duration,
		Abstract: input.Abstract,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", input.EventID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotPublished),
			errors.Is(err, service.ErrDuplicateApplication),
			errors.Is(err, service.ErrSpeakerCapacity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleEdit godoc
// @Summary      Edit a pending speaker application
// @Description  Editing resets the application to pending for a fresh review.
// @Tags         speaker-requests
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                                true  "request ID"
// @Param        input      body      request.EditSpeakerRequestRequest  true  "application details"
// @Success      200        {object}  domain.SpeakerRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /speaker-requests/{requestID} [put]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleEdit(ctx *gin.Context) {
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

	var input request.EditSpeakerRequestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.Edit(ctx.Request.Context(), user, requestID, domain.SpeakerRequest{
		Topic:    input.Topic,
		Duration: input.Duration,
		Abstract: input.Abstract,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSpeakerRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("speaker request", "requestID", requestID))
		case errors.Is(err, service.ErrNotApplicant):
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
// @Summary      Review a speaker application
// @Description  Approvals claim one of the event's speaker slots while slots remain.
// @Tags         speaker-requests
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                           true  "request ID"
// @Param        input      body      request.ReviewRequestRequest  true  "review decision"
// @Success      200        {object}  domain.SpeakerRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /speaker-requests/{requestID}/review [put]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleReview(ctx *gin.Context) {
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
		case errors.Is(err, service.ErrSpeakerRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("speaker request", "requestID", requestID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidReviewStatus),
			errors.Is(err, service.ErrSpeakerRequestNotPending),
			errors.Is(err, service.ErrSpeakerCapacity):
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
// @Summary      Withdraw a speaker application
// @Description  Approved applications cannot be withdrawn, the slot is already claimed.
// @Tags         speaker-requests
// @Produce      json
// @Param        requestID  path  int  true  "request ID"
// @Success      204        "no content"
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /speaker-requests/{requestID} [delete]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleDelete(ctx *gin.Context) {
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
		case errors.Is(err, service.ErrSpeakerRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("speaker request", "requestID", requestID))
		case errors.Is(err, service.ErrNotApplicant), errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSpeakerRequestApproved):
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
// @Summary      Get a speaker application
// @Tags         speaker-requests
// @Produce      json
// @Param        requestID  path      int  true  "request ID"
// @Success      200        {object}  domain.SpeakerRequest
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /speaker-requests/{requestID} [get]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleGet(ctx *gin.Context) {
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
		case errors.Is(err, service.ErrSpeakerRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("speaker request", "requestID", requestID))
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
// @Summary      List speaker applications
// @Description  Speakers see their own applications, school admins their school's events', super admins all.
// @Tags         speaker-requests
// @Produce      json
// @Param        event_id  query     int     false  "filter by event"
// @Param        status    query     string  false  "filter by status"
// @Param        page      query     int     false  "page number"
// @Param        limit     query     int     false  "page size"
// @Success      200       {object}  response.ListResponse[domain.SpeakerRequest]
// @Failure      403       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /speaker-requests [get]
// @Security     BearerAuth
func (h *SpeakerRequestHandler) HandleList(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, limit := parsePagination(ctx)
	status := domain.RequestStatus(ctx.Query("status"))

	var eventID uint
	if raw := ctx.Query("event_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event_id")))
			return
		}
		eventID = uint(parsed)
	}

	requests, total, err := h.svc.List(ctx.Request.Context(), user, eventID, status, page, limit)
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
