package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/edu-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/edu-events-api/internal/domain"
	"github.com/vietanh2810/edu-events-api/internal/service"
)

type FeedbackService interface {
	Submit(ctx context.Context, principal domain.User, feedback domain.Feedback) (domain.Feedback, error)
	Update(ctx context.Context, principal domain.User, feedbackID uint, rating int, comment string) (domain.Feedback, error)
	Delete(ctx context.Context, principal domain.User, feedbackID uint) error
	ListByEvent(ctx context.Context, eventID uint, page, limit int) ([]domain.Feedback, int64, error)
	ListByUser(ctx context.Context, principal domain.User, page, limit int) ([]domain.Feedback, int64, error)
	Stats(ctx context.Context, eventID uint) (domain.FeedbackStats, error)
}

type FeedbackHandler struct {
	svc  FeedbackService
	uSvc UserService
}

func NewFeedbackHandler(svc FeedbackService, uSvc UserService) *FeedbackHandler {
	return &FeedbackHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Leave feedback on an event
// @Description  Registered attendees rate an event once. The event's average updates atomically.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        input  body      request.SubmitFeedbackRequest  true  "event, rating and comment"
// @Success      201    {object}  domain.Feedback
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /feedback [post]
// @Security     BearerAuth
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), user, domain.Feedback{
		EventID: input.EventID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", input.EventID))
		case errors.Is(err, service.ErrNotRegisteredForEvent):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrDuplicateFeedback):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateFeedback godoc
// @Summary      Edit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        feedbackID  path      int                            true  "feedback ID"
// @Param        input       body      request.UpdateFeedbackRequest  true  "rating and comment"
// @Success      200         {object}  domain.Feedback
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /feedback/{feedbackID} [put]
// @Security     BearerAuth
func (h *FeedbackHandler) HandleUpdateFeedback(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	feedbackID, err := parseIDParam(ctx, "feedbackID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateFeedbackRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.Update(ctx.Request.Context(), user, feedbackID, input.Rating, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFeedbackNotFound):
			response.RenderErr(ctx, response.ErrNotFound("feedback", "feedbackID", feedbackID))
		case errors.Is(err, service.ErrNotFeedbackOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateFeedback -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleDeleteFeedback godoc
// @Summary      Delete feedback
// @Tags         feedback
// @Produce      json
// @Param        feedbackID  path  int  true  "feedback ID"
// @Success      204         "no content"
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /feedback/{feedbackID} [delete]
// @Security     BearerAuth
func (h *FeedbackHandler) HandleDeleteFeedback(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	feedbackID, err := parseIDParam(ctx, "feedbackID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), user, feedbackID); err != nil {
		switch {
		case errors.Is(err, service.ErrFeedbackNotFound):
			response.RenderErr(ctx, response.ErrNotFound("feedback", "feedbackID", feedbackID))
		case errors.Is(err, service.ErrNotFeedbackOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteFeedback -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListFeedback godoc
// @Summary      List an event's feedback
// @Tags         feedback
// @Produce      json
// @Param        eventID  path      int  true   "event ID"
// @Param        page     query     int  false  "page number"
// @Param        limit    query     int  false  "page size"
// @Success      200      {object}  response.ListResponse[domain.Feedback]
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /feedback/event/{eventID} [get]
func (h *FeedbackHandler) HandleListFeedback(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, limit := parsePagination(ctx)

	feedbacks, total, err := h.svc.ListByEvent(ctx.Request.Context(), eventID, page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListFeedback -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(feedbacks, total, page, limit))
}

// HandleListMyFeedback godoc
// @Summary      List the caller's own feedback
// @Tags         feedback
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.ListResponse[domain.Feedback]
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /feedback [get]
// @Security     BearerAuth
func (h *FeedbackHandler) HandleListMyFeedback(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, limit := parsePagination(ctx)

	feedbacks, total, err := h.svc.ListByUser(ctx.Request.Context(), user, page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyFeedback -> h.svc.ListByUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(feedbacks, total, page, limit))
}

// HandleFeedbackStats godoc
// @Summary      Get an event's rating summary
// @Tags         feedback
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.FeedbackStats
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /feedback/stats/event/{eventID} [get]
func (h *FeedbackHandler) HandleFeedbackStats(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stats, err := h.svc.Stats(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleFeedbackStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
