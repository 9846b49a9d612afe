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

type StatsService interface {
	Dashboard(ctx context.Context, principal domain.User) (domain.DashboardStats, error)
	RequestBreakdown(ctx context.Context, principal domain.User) (domain.RequestBreakdown, error)
	TopSchools(ctx context.Context, principal domain.User, n int) ([]domain.SchoolRank, error)
	ListByRole(ctx context.Context, principal domain.User, role domain.Role, page, limit int) ([]domain.User, int64, error)
	DeactivateUser(ctx context.Context, principal domain.User, userID uint) error
}

type AdminAccountService interface {
	CreateAdmin(ctx context.Context, principal domain.User, user domain.User) (domain.User, error)
}

type AdminHandler struct {
	svc        StatsService
	accountSvc AdminAccountService
	uSvc       UserService
}

func NewAdminHandler(svc StatsService, accountSvc AdminAccountService, uSvc UserService) *AdminHandler {
	return &AdminHandler{
		svc:        svc,
		accountSvc: accountSvc,
		uSvc:       uSvc,
	}
}

// HandleDashboard godoc
// @Summary      Platform-wide dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.Dashboard(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleDashboard -> h.svc.Dashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleRequestBreakdown godoc
// @Summary      Request counts grouped by status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.RequestBreakdown
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/requests/breakdown [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleRequestBreakdown(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	breakdown, err := h.svc.RequestBreakdown(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleRequestBreakdown -> h.svc.RequestBreakdown -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, breakdown)
}

// HandleTopSchools godoc
// @Summary      Most active schools by event count
// @Tags         admin
// @Produce      json
// @Param        n    query     int  false  "number of schools"  default(5)
// @Success      200  {array}   domain.SchoolRank
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/schools/top [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleTopSchools(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	n, _ := strconv.Atoi(ctx.DefaultQuery("n", "5"))

	ranks, err := h.svc.TopSchools(ctx.Request.Context(), user, n)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleTopSchools -> h.svc.TopSchools -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ranks)
}

// HandleListUsersByRole godoc
// @Summary      List users by role
// @Tags         admin
// @Produce      json
// @Param        role   query     string  true   "role to filter by"
// @Param        page   query     int     false  "page number"
// @Param        limit  query     int     false  "page size"
// @Success      200    {object}  response.ListResponse[domain.User]
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListUsersByRole(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	role, err := domain.ParseRole(ctx.Query("role"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, limit := parsePagination(ctx)

	users, total, err := h.svc.ListByRole(ctx.Request.Context(), user, role, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListUsersByRole -> h.svc.ListByRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(users, total, page, limit))
}

// HandleListAdmins godoc
// @Summary      List super admin accounts
// @Tags         admin
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.ListResponse[domain.User]
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admin/admins [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListAdmins(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, limit := parsePagination(ctx)

	admins, total, err := h.svc.ListByRole(ctx.Request.Context(), user, domain.RoleSuperAdmin, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListAdmins -> h.svc.ListByRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(admins, total, page, limit))
}

// HandleCreateAdmin godoc
// @Summary      Create a super admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateAdminRequest  true  "admin account"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/admins [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleCreateAdmin(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.accountSvc.CreateAdmin(ctx.Request.Context(), user, domain.User{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserEmailExists):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleCreateAdmin -> h.accountSvc.CreateAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeactivateUser godoc
// @Summary      Deactivate a user account
// @Description  Deactivated accounts cannot log in; their history is kept.
// @Tags         admin
// @Produce      json
// @Param        userID  path  int  true  "user ID"
// @Success      204     "no content"
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/users/{userID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeactivateUser(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeactivateUser(ctx.Request.Context(), user, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "userID", userID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeactivateUser -> h.svc.DeactivateUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
