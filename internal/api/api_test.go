package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event_management/internal/domain"
	"event_management/internal/service"
	"event_management/internal/store"
	"event_management/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	deps   Deps
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := storetest.NewDB(t)
	gw := store.New(gdb)
	deps := Deps{
		DB:         gdb,
		Redis:      rdb,
		CacheTTL:   time.Minute,
		JWTSecret:  testSecret,
		JWTTTL:     time.Hour,
		Users:      service.NewUserService(gw, bcrypt.MinCost),
		Events:     service.NewEventService(gw, nil),
		Categories: service.NewCategoryService(gw),
		Bookings:   service.NewBookingService(gw, nil),
		Payments:   service.NewPaymentService(gw, nil),
	}
	r := gin.New()
	RegisterRoutes(r, deps)
	return &testServer{router: r, deps: deps}
}

func (s *testServer) seedUser(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := s.deps.Users.RegisterUser(context.Background(), service.RegisterUserParams{Email: email, Password: password, Role: role})
	require.NoError(t, err)
	return user
}

type request struct {
	method string
	path   string
	body   any
	auth   func(*http.Request)
}

func basic(email, password string) func(*http.Request) {
	return func(req *http.Request) { req.SetBasicAuth(email, password) }
}

func (s *testServer) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if r.auth != nil {
		r.auth(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
