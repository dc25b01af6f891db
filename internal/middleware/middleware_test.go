package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event_management/internal/domain"
	"event_management/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var ana = domain.Principal{UserID: 1, Email: "ana@example.com", Role: domain.RoleUser}

func stubChecker(ctx context.Context, email, password string) (domain.Principal, error) {
	if email == ana.Email && password == "secret" {
		return ana, nil
	}
	if email == "broken@example.com" {
		return domain.Principal{}, errors.New("db down")
	}
	return domain.Principal{}, ErrBadCredentials
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": p.Email})
	})
	r.GET("/private", handlers...)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(CredentialCheckerFunc(stubChecker), testSecret))

	token, err := utils.GenerateJWT(ana, testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"missing header", func(*http.Request) {}, http.StatusUnauthorized},
		{"valid basic", func(req *http.Request) { req.SetBasicAuth("ana@example.com", "secret") }, http.StatusOK},
		{"wrong password", func(req *http.Request) { req.SetBasicAuth("ana@example.com", "nope") }, http.StatusUnauthorized},
		{"checker failure", func(req *http.Request) { req.SetBasicAuth("broken@example.com", "x") }, http.StatusInternalServerError},
		{"valid bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"garbage bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := do(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), "ana@example.com")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	asRole := func(role domain.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			SetPrincipal(c, domain.Principal{UserID: 1, Role: role})
		}
	}

	w := do(newRouter(asRole(domain.RoleUser), RequireRole(domain.RoleAdmin)), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newRouter(asRole(domain.RoleAdmin), RequireRole(domain.RoleAdmin)), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(newRouter(RequireRole(domain.RoleAdmin)), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger(), Metrics())

	w := do(r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = do(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequireSelfOrRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newUserRouter := func(p *domain.Principal) *gin.Engine {
		r := gin.New()
		var handlers []gin.HandlerFunc
		if p != nil {
			handlers = append(handlers, func(c *gin.Context) { SetPrincipal(c, *p) })
		}
		handlers = append(handlers, RequireSelfOrRole("id", domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
		r.PUT("/users/:id", handlers...)
		return r
	}
	admin := domain.Principal{UserID: 9, Role: domain.RoleAdmin}

	tests := []struct {
		name      string
		principal *domain.Principal
		path      string
		status    int
	}{
		{"own account", &ana, "/users/1", http.StatusOK},
		{"other account", &ana, "/users/2", http.StatusForbidden},
		{"admin on other account", &admin, "/users/2", http.StatusOK},
		{"anonymous", nil, "/users/1", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newUserRouter(tt.principal), httptest.NewRequest(http.MethodPut, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
