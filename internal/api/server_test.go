package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/vietanh2810/edu-events-api/internal/api/handler/v1"
	"github.com/vietanh2810/edu-events-api/internal/config"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		Config: &config.AppConfig{
			API: &config.APIConfig{JWTSigningKey: "test-key"},
			Gin: &config.GinConfig{Mode: gin.TestMode},
		},
		Router: gin.New(),
	}

	s.MountHandlers(
		v1.NewAuthHandler(s.Config.API, nil),
		v1.NewUserHandler(nil),
		v1.NewEventHandler(nil, nil),
		v1.NewEventRequestHandler(nil, nil),
		v1.NewSpeakerRequestHandler(nil, nil),
		v1.NewSchoolHandler(nil, nil, nil, nil),
		v1.NewFeedbackHandler(nil, nil),
		v1.NewAdminHandler(nil, nil, nil),
	)

	return s
}

func TestServerRouteTable(t *testing.T) {
	s := newTestServer()

	mounted := make(map[string]bool)
	for _, route := range s.Router.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/signup",
		"POST /api/v1/auth/login",

		"GET /api/v1/events",
		"GET /api/v1/events/:eventID",
		"POST /api/v1/events",
		"PUT /api/v1/events/:eventID",
		"DELETE /api/v1/events/:eventID",
		"POST /api/v1/events/:eventID/register",
		"DELETE /api/v1/events/:eventID/register",
		"GET /api/v1/events/:eventID/speakers",
		"POST /api/v1/events/:eventID/apply-speaker",
		"PUT /api/v1/events/:eventID/speakers/:speakerID",

		"GET /api/v1/feedback",
		"POST /api/v1/feedback",
		"GET /api/v1/feedback/event/:eventID",
		"GET /api/v1/feedback/stats/event/:eventID",
		"PUT /api/v1/feedback/:feedbackID",
		"DELETE /api/v1/feedback/:feedbackID",

		"GET /api/v1/event-requests",
		"POST /api/v1/event-requests",
		"GET /api/v1/event-requests/:requestID",
		"PUT /api/v1/event-requests/:requestID",
		"DELETE /api/v1/event-requests/:requestID",
		"PUT /api/v1/event-requests/:requestID/review",

		"GET /api/v1/speaker-requests",
		"POST /api/v1/speaker-requests",
		"GET /api/v1/speaker-requests/:requestID",
		"PUT /api/v1/speaker-requests/:requestID",
		"DELETE /api/v1/speaker-requests/:requestID",
		"PUT /api/v1/speaker-requests/:requestID/review",

		"GET /api/v1/schools",
		"POST /api/v1/schools",
		"GET /api/v1/schools/:schoolID",
		"PUT /api/v1/schools/:schoolID",
		"DELETE /api/v1/schools/:schoolID",
		"GET /api/v1/schools/:schoolID/events",
		"GET /api/v1/schools/:schoolID/students",

		"GET /api/v1/admin/dashboard",
		"GET /api/v1/admin/requests/breakdown",
		"GET /api/v1/admin/schools/top",
		"GET /api/v1/admin/users",
		"GET /api/v1/admin/admins",
		"POST /api/v1/admin/admins",
		"DELETE /api/v1/admin/users/:userID",

		"GET /",
	}
	for _, route := range expected {
		assert.True(t, mounted[route], "missing route %s", route)
	}
}

func TestServerReviewRoutesUsePut(t *testing.T) {
	s := newTestServer()

	// Reviews are idempotent updates of the request resource, not creations.
	for _, route := range s.Router.Routes() {
		if route.Path == "/api/v1/event-requests/:requestID/review" ||
			route.Path == "/api/v1/speaker-requests/:requestID/review" {
			assert.Equal(t, http.MethodPut, route.Method, route.Path)
		}
	}
}
