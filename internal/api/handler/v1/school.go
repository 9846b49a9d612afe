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

type SchoolService interface {
	GetSchool(ctx context.Context, id uint) (domain.School, error)
	ListSchools(ctx context.Context, page, limit int) ([]domain.School, int64, error)
	CreateSchool(ctx context.Context, principal domain.User, school domain.School) (domain.School, error)
	UpdateSchool(ctx context.Context, principal domain.User, schoolID uint, updated domain.School, additionalAdminIDs []uint) (domain.School, error)
	DeleteSchool(ctx context.Context, principal domain.User, schoolID uint) error
}

type SchoolStudentService interface {
	GetSchoolStudents(ctx context.Context, schoolID uint, page, limit int) ([]domain.User, int64, error)
}

type SchoolEventService interface {
	ListBySchool(ctx context.Context, schoolID uint, page, limit int) ([]domain.Event, int64, error)
}

type SchoolHandler struct {
	svc        SchoolService
	studentSvc SchoolStudentService
	eventSvc   SchoolEventService
	uSvc       UserService
}

func NewSchoolHandler(svc SchoolService, studentSvc SchoolStudentService, eventSvc SchoolEventService, uSvc UserService) *SchoolHandler {
	return &SchoolHandler{
		svc:        svc,
		studentSvc: studentSvc,
		eventSvc:   eventSvc,
		uSvc:       uSvc,
	}
}

// HandleListSchools godoc
// @Summary      List schools
// @Tags         schools
// @Produce      json
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.ListResponse[domain.School]
// @Failure      500    {object}  response.Err
// @Router       /schools [get]
// @Security     BearerAuth
func (h *SchoolHandler) HandleListSchools(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	schools, total, err := h.svc.ListSchools(ctx.Request.Context(), page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSchools -> h.svc.ListSchools -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(schools, total, page, limit))
}

// HandleGetSchool godoc
// @Summary      Get a school by ID
// @Tags         schools
// @Produce      json
// @Param        schoolID  path      int  true  "school ID"
// @Success      200       {object}  domain.School
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /schools/{schoolID} [get]
// @Security     BearerAuth
func (h *SchoolHandler) HandleGetSchool(ctx *gin.Context) {
	schoolID, err := parseIDParam(ctx, "schoolID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	school, err := h.svc.GetSchool(ctx.Request.Context(), schoolID)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("school", "schoolID", schoolID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSchool -> h.svc.GetSchool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, school)
}

// HandleCreateSchool godoc
// @Summary      Register a school
// @Description  Super admins register a school and link its primary admin.
// @Tags         schools
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateSchoolRequest  true  "school details"
// @Success      201    {object}  domain.School
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /schools [post]
// @Security     BearerAuth
func (h *SchoolHandler) HandleCreateSchool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateSchool(ctx.Request.Context(), user, domain.School{
		Name:        input.Name,
		Address:     input.Address,
		Description: input.Description,
		AdminID:     input.AdminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "adminID", input.AdminID))
		default:
			err = fmt.Errorf("v1.HandleCreateSchool -> h.svc.CreateSchool -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateSchool godoc
// @Summary      Update a school
// @Tags         schools
// @Accept       json
// @Produce      json
// @Param        schoolID  path      int                          true  "school ID"
// @Param        input     body      request.UpdateSchoolRequest  true  "school details"
// @Success      200       {object}  domain.School
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /schools/{schoolID} [put]
// @Security     BearerAuth
func (h *SchoolHandler) HandleUpdateSchool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	schoolID, err := parseIDParam(ctx, "schoolID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateSchoolRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.UpdateSchool(ctx.Request.Context(), user, schoolID, domain.School{
		Name:        input.Name,
		Address:     input.Address,
		Description: input.Description,
	}, input.AdditionalAdminIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolNotFound):
			response.RenderErr(ctx, response.ErrNotFound("school", "schoolID", schoolID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateSchool -> h.svc.UpdateSchool -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleDeleteSchool godoc
// @Summary      Delete a school
// @Tags         schools
// @Produce      json
// @Param        schoolID  path  int  true  "school ID"
// @Success      204       "no content"
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /schools/{schoolID} [delete]
// @Security     BearerAuth
func (h *SchoolHandler) HandleDeleteSchool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	schoolID, err := parseIDParam(ctx, "schoolID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteSchool(ctx.Request.Context(), user, schoolID); err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolNotFound):
			response.RenderErr(ctx, response.ErrNotFound("school", "schoolID", schoolID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteSchool -> h.svc.DeleteSchool -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetSchoolEvents godoc
// @Summary      List a school's events
// @Tags         schools
// @Produce      json
// @Param        schoolID  path      int  true   "school ID"
// @Param        page      query     int  false  "page number"
// @Param        limit     query     int  false  "page size"
// @Success      200       {object}  response.ListResponse[domain.Event]
// @Failure      400       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /schools/{schoolID}/events [get]
// @Security     BearerAuth
func (h *SchoolHandler) HandleGetSchoolEvents(ctx *gin.Context) {
	schoolID, err := parseIDParam(ctx, "schoolID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, limit := parsePagination(ctx)

	events, total, err := h.eventSvc.ListBySchool(ctx.Request.Context(), schoolID, page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSchoolEvents -> h.eventSvc.ListBySchool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(events, total, page, limit))
}

// HandleGetSchoolStudents godoc
// @Summary      List a school's students
// @Description  Restricted to the school's admins and super admins.
// @Tags         schools
// @Produce      json
// @Param        schoolID  path      int  true   "school ID"
// @Param        page      query     int  false  "page number"
// @Param        limit     query     int  false  "page size"
// @Success      200       {object}  response.ListResponse[domain.User]
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /schools/{schoolID}/students [get]
// @Security     BearerAuth
func (h *SchoolHandler) HandleGetSchoolStudents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	schoolID, err := parseIDParam(ctx, "schoolID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if user.Role != domain.RoleSuperAdmin {
		school, err := h.svc.GetSchool(ctx.Request.Context(), schoolID)
		if err != nil {
			if errors.Is(err, service.ErrSchoolNotFound) {
				response.RenderErr(ctx, response.ErrNotFound("school", "schoolID", schoolID))
				return
			}

			err = fmt.Errorf("v1.HandleGetSchoolStudents -> h.svc.GetSchool -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		if !school.IsAdministeredBy(user.ID) {
			response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("user does not administer this school")))
			return
		}
	}

	page, limit := parsePagination(ctx)

	students, total, err := h.studentSvc.GetSchoolStudents(ctx.Request.Context(), schoolID, page, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSchoolStudents -> h.studentSvc.GetSchoolStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewListResponse(students, total, page, limit))
}
