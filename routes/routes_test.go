package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/config"
	"suraksha/internal/handlers"
	"suraksha/internal/models"
	"suraksha/internal/services"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
	"suraksha/pkg/websocket"
)

const testSecret = "routes-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	cfg := &config.Config{
		Security: &config.SecurityConfig{
			JWTSecret:          testSecret,
			CORSAllowedOrigins: []string{"*"},
		},
		WebSocket: &config.WebSocketConfig{Path: "/ws"},
	}

	// Role checks run in middleware, so handlers over nil services are
	// never reached by the requests these tests make.
	return SetupRouter(cfg, log, &Handlers{
		Auth:   handlers.NewAuthHandler(nil),
		Report: handlers.NewReportHandler(nil),
		SOS:    handlers.NewSOSHandler(nil),
		Query:  handlers.NewQueryHandler(nil),
		Chat:   handlers.NewChatHandler(services.NewChatService(0)),
		WS: websocket.NewHandler(&websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingInterval:    54 * time.Second,
			PongTimeout:     60 * time.Second,
			AllowedOrigins:  []string{"*"},
		}),
	})
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateToken(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test",
		Email: "test@example.org",
		Role:  role,
	}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestRegisteredRoutes(t *testing.T) {
	router := newTestRouter(t)

	expected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/ws"},
		{http.MethodPost, "/api/users/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/send-otp"},
		{http.MethodPost, "/api/auth/verify-otp"},
		{http.MethodPost, "/api/reports"},
		{http.MethodGet, "/api/reports/my"},
		{http.MethodGet, "/api/reports/:id"},
		{http.MethodDelete, "/api/reports/:id"},
		{http.MethodGet, "/api/reports/admin/all"},
		{http.MethodPut, "/api/reports/admin/assign/:id"},
		{http.MethodPut, "/api/reports/admin/status/:id"},
		{http.MethodDelete, "/api/reports/admin/:id"},
		{http.MethodGet, "/api/reports/counsellor/my"},
		{http.MethodPut, "/api/reports/counsellor/status/:id"},
		{http.MethodPost, "/api/sos"},
		{http.MethodGet, "/api/sos/admin/all"},
		{http.MethodDelete, "/api/sos/admin/:id"},
		{http.MethodPost, "/api/queries"},
		{http.MethodGet, "/api/queries/admin/all"},
		{http.MethodDelete, "/api/queries/admin/:id"},
		{http.MethodPost, "/api/queries/admin/reply/:id"},
		{http.MethodPost, "/api/chat"},
	}

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range expected {
		if !registered[want.method+" "+want.path] {
			t.Errorf("missing route %s %s", want.method, want.path)
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/reports/my"},
		{http.MethodPost, "/api/sos"},
		{http.MethodGet, "/api/reports/admin/all"},
		{http.MethodGet, "/api/reports/counsellor/my"},
		{http.MethodGet, "/api/sos/admin/all"},
		{http.MethodGet, "/api/queries/admin/all"},
	}

	for _, p := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestRoleGroupsRejectWrongRole(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		role   models.Role
	}{
		{"user on admin reports", http.MethodGet, "/api/reports/admin/all", models.RoleUser},
		{"counsellor on admin reports", http.MethodGet, "/api/reports/admin/all", models.RoleCounsellor},
		{"user on counsellor reports", http.MethodGet, "/api/reports/counsellor/my", models.RoleUser},
		{"admin on counsellor reports", http.MethodGet, "/api/reports/counsellor/my", models.RoleAdmin},
		{"user on admin sos", http.MethodGet, "/api/sos/admin/all", models.RoleUser},
		{"user on admin queries", http.MethodGet, "/api/queries/admin/all", models.RoleUser},
		{"user on query reply", http.MethodPost, "/api/queries/admin/reply/" + primitive.NewObjectID().Hex(), models.RoleUser},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusForbidden {
				t.Errorf("got %d, want 403", w.Code)
			}
		})
	}
}
