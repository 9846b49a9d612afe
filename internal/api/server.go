package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/edu-events-api/docs"
	v1 "github.com/vietanh2810/edu-events-api/internal/api/handler/v1"
	"github.com/vietanh2810/edu-events-api/internal/api/middleware"
	"github.com/vietanh2810/edu-events-api/internal/config"
	"github.com/vietanh2810/edu-events-api/internal/repository"
	"github.com/vietanh2810/edu-events-api/internal/repository/dao"
	"github.com/vietanh2810/edu-events-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	schoolRepo := repository.NewSchoolRepository(dao.NewSchoolDAO(db), userRepo)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	eventReqRepo := repository.NewEventRequestRepository(dao.NewEventRequestDAO(db))
	speakerReqRepo := repository.NewSpeakerRequestRepository(dao.NewSpeakerRequestDAO(db))
	feedbackRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	statsRepo := repository.NewStatsRepository(dao.NewStatsDAO(db))

	uSvc := service.NewUserService(userRepo)
	eventSvc := service.NewEventService(eventRepo, schoolRepo)

	authSvc := service.NewAuthService(userRepo)

	authHandler := v1.NewAuthHandler(conf.API, authSvc)
	userHandler := v1.NewUserHandler(uSvc)
	eventHandler := v1.NewEventHandler(eventSvc, uSvc)
	eventReqHandler := v1.NewEventRequestHandler(service.NewEventRequestService(eventReqRepo, schoolRepo), uSvc)
	speakerReqHandler := v1.NewSpeakerRequestHandler(service.NewSpeakerRequestService(speakerReqRepo, eventRepo, schoolRepo), uSvc)
	schoolHandler := v1.NewSchoolHandler(service.NewSchoolService(schoolRepo, userRepo), uSvc, eventSvc, uSvc)
	feedbackHandler := v1.NewFeedbackHandler(service.NewFeedbackService(feedbackRepo, eventRepo), uSvc)
	adminHandler := v1.NewAdminHandler(
		service.NewStatsService(statsRepo, userRepo, schoolRepo, eventRepo, eventReqRepo, speakerReqRepo),
		authSvc,
		uSvc,
	)

	s.MountHandlers(authHandler, userHandler, eventHandler, eventReqHandler, speakerReqHandler, schoolHandler, feedbackHandler, adminHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	eventReqHandler *v1.EventRequestHandler,
	speakerReqHandler *v1.SpeakerRequestHandler,
	schoolHandler *v1.SchoolHandler,
	feedbackHandler *v1.FeedbackHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/feedback/event/:eventID", feedbackHandler.HandleListFeedback)
		public.GET("/feedback/stats/event/:eventID", feedbackHandler.HandleFeedbackStats)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/me", userHandler.HandleGetMe)
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.POST("/events", eventHandler.HandleCreateEvent)
		authenticated.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authenticated.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authenticated.POST("/events/:eventID/register", eventHandler.HandleRegister)
		authenticated.DELETE("/events/:eventID/register", eventHandler.HandleUnregister)
		authenticated.GET("/events/:eventID/speakers", eventHandler.HandleGetSpeakers)
		authenticated.POST("/events/:eventID/apply-speaker", eventHandler.HandleApplySpeaker)
		authenticated.PUT("/events/:eventID/speakers/:speakerID", eventHandler.HandleReviewSpeaker)

		authenticated.GET("/feedback", feedbackHandler.HandleListMyFeedback)
		authenticated.POST("/feedback", feedbackHandler.HandleSubmitFeedback)
		authenticated.PUT("/feedback/:feedbackID", feedbackHandler.HandleUpdateFeedback)
		authenticated.DELETE("/feedback/:feedbackID", feedbackHandler.HandleDeleteFeedback)

		authenticated.GET("/event-requests", eventReqHandler.HandleList)
		authenticated.POST("/event-requests", eventReqHandler.HandleSubmit)
		authenticated.GET("/event-requests/:requestID", eventReqHandler.HandleGet)
		authenticated.PUT("/event-requests/:requestID", eventReqHandler.HandleEdit)
		authenticated.DELETE("/event-requests/:requestID", eventReqHandler.HandleDelete)
		authenticated.PUT("/event-requests/:requestID/review", eventReqHandler.HandleReview)

		authenticated.GET("/speaker-requests", speakerReqHandler.HandleList)
		authenticated.POST("/speaker-requests", speakerReqHandler.HandleSubmit)
		authenticated.GET("/speaker-requests/:requestID", speakerReqHandler.HandleGet)
		authenticated.PUT("/speaker-requests/:requestID", speakerReqHandler.HandleEdit)
		authenticated.DELETE("/speaker-requests/:requestID", speakerReqHandler.HandleDelete)
		authenticated.PUT("/speaker-requests/:requestID/review", speakerReqHandler.HandleReview)

		authenticated.GET("/schools", schoolHandler.HandleListSchools)
		authenticated.POST("/schools", schoolHandler.HandleCreateSchool)
		authenticated.GET("/schools/:schoolID", schoolHandler.HandleGetSchool)
		authenticated.PUT("/schools/:schoolID", schoolHandler.HandleUpdateSchool)
		authenticated.DELETE("/schools/:schoolID", schoolHandler.HandleDeleteSchool)
		authenticated.GET("/schools/:schoolID/events", schoolHandler.HandleGetSchoolEvents)
		authenticated.GET("/schools/:schoolID/students", schoolHandler.HandleGetSchoolStudents)

		authenticated.GET("/admin/dashboard", adminHandler.HandleDashboard)
		authenticated.GET("/admin/requests/breakdown", adminHandler.HandleRequestBreakdown)
		authenticated.GET("/admin/schools/top", adminHandler.HandleTopSchools)
		authenticated.GET("/admin/users", adminHandler.HandleListUsersByRole)
		authenticated.GET("/admin/admins", adminHandler.HandleListAdmins)
		authenticated.POST("/admin/admins", adminHandler.HandleCreateAdmin)
		authenticated.DELETE("/admin/users/:userID", adminHandler.HandleDeactivateUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Edu Events API"
	docs.SwaggerInfo.Description = "Multi-tenant educational event management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
