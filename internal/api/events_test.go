package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"event_management/internal/domain"
	"event_management/internal/service"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventBody(name string, capacity int, categoryIDs ...uint) map[string]any {
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	body := map[string]any{
		"name":      name,
		"startDate": start,
		"endDate":   start.Add(2 * time.Hour),
		"capacity":  capacity,
		// Client-supplied registrations are ignored.
		"registrations": []map[string]any{{"userId": 99}},
	}
	if categoryIDs != nil {
		body["categoryIds"] = categoryIDs
	}
	return body
}

func TestEventLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	ana := s.seedUser(t, "ana@example.com", "secret", domain.RoleUser)
	bo := s.seedUser(t, "bo@example.com", "secret", domain.RoleUser)

	w := s.do(t, request{method: http.MethodPost, path: "/api/categories", body: map[string]any{"name": "Tech"}})
	require.Equal(t, http.StatusCreated, w.Code)
	var tech domain.Category
	decode(t, w, &tech)

	w = s.do(t, request{method: http.MethodPost, path: "/api/events", body: eventBody("Tech Conference", 1, tech.ID)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event domain.Event
	decode(t, w, &event)
	require.Len(t, event.Categories, 1)

	w = s.do(t, request{method: http.MethodGet, path: fmt.Sprintf("/api/events/%d/registrations", event.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	var none []domain.Registration
	decode(t, w, &none)
	assert.Empty(t, none)

	path := fmt.Sprintf("/api/events/%d/register/%d", event.ID, ana.ID)
	w = s.do(t, request{method: http.MethodPost, path: path})
	require.Equal(t, http.StatusCreated, w.Code)
	var registration domain.Registration
	decode(t, w, &registration)
	assert.Equal(t, domain.RegistrationConfirmed, registration.Status)

	w = s.do(t, request{method: http.MethodPost, path: path})
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate registration")

	w = s.do(t, request{method: http.MethodPost, path: fmt.Sprintf("/api/events/%d/register/%d", event.ID, bo.ID)})
	assert.Equal(t, http.StatusConflict, w.Code, "capacity reached")

	w = s.do(t, request{method: http.MethodPost, path: fmt.Sprintf("/api/events/999/register/%d", ana.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/events/registrations/%d", registration.ID)})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, request{method: http.MethodDelete, path: "/api/events/registrations/999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, request{method: http.MethodGet, path: fmt.Sprintf("/api/users/%d/registrations", ana.ID), auth: basic("ana@example.com", "secret")})
	require.Equal(t, http.StatusOK, w.Code)
	var regs []domain.Registration
	decode(t, w, &regs)
	require.Len(t, regs, 1)
	assert.Equal(t, domain.RegistrationCancelled, regs[0].Status)

	for _, p := range []string{"/api/events", "/api/events/upcoming", "/api/events/search?keyword=tech", fmt.Sprintf("/api/events/category/%d", tech.ID)} {
		var list []domain.Event
		w = s.do(t, request{method: http.MethodGet, path: p})
		require.Equal(t, http.StatusOK, w.Code, p)
		decode(t, w, &list)
		assert.Len(t, list, 1, p)
	}

	from := time.Now().UTC().Format(time.DateOnly)
	to := time.Now().Add(96 * time.Hour).UTC().Format(time.DateOnly)
	w = s.do(t, request{method: http.MethodGet, path: "/api/events/range?from=" + from + "&to=" + to})
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, request{method: http.MethodGet, path: "/api/events/range?from=yesterday&to=" + to})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, request{method: http.MethodGet, path: "/api/events/search"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/categories/%d", tech.ID)})
	assert.Equal(t, http.StatusConflict, w.Code, "category still in use")

	update := eventBody("Tech Conference 2024", 5)
	w = s.do(t, request{method: http.MethodPut, path: fmt.Sprintf("/api/events/%d", event.ID), body: update})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &event)
	assert.Equal(t, "Tech Conference 2024", event.Name)
	assert.Len(t, event.Categories, 1, "omitted categoryIds keep the current set")

	w = s.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/events/%d", event.ID)})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, request{method: http.MethodGet, path: fmt.Sprintf("/api/events/%d", event.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/events/%d", event.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/categories/%d", tech.ID)})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateEvent_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, request{method: http.MethodPost, path: "/api/events", body: map[string]any{"name": "No dates"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, request{method: http.MethodPost, path: "/api/events", body: eventBody("Bad capacity", -1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, request{method: http.MethodPost, path: "/api/events", body: eventBody("Unknown category", 0, 42)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEvents_Cache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := newTestServer(t, db)

	mock.ExpectGet("events:all").SetVal(`[{"id":5,"name":"Cached Gig"}]`)
	w := s.do(t, request{method: http.MethodGet, path: "/api/events"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), "Cached Gig")

	// Upcoming events depend on the clock and bypass Redis.
	w = s.do(t, request{method: http.MethodGet, path: "/api/events/upcoming"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))

	// Writes drop every cached event list.
	mock.ExpectScan(0, "events:*", 100).SetVal([]string{"events:all"}, 0)
	mock.ExpectDel("events:all").SetVal(1)
	w = s.do(t, request{method: http.MethodPost, path: "/api/events", body: eventBody("Gig", 0)})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandlers(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, request{method: http.MethodPost, path: "/api/categories", body: map[string]any{"name": "Music"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, request{method: http.MethodPost, path: "/api/categories", body: map[string]any{"name": "music"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, request{method: http.MethodPut, path: "/api/categories/1", body: map[string]any{"name": "Live Music"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, request{method: http.MethodGet, path: "/api/categories/1"})
	assert.Contains(t, w.Body.String(), "Live Music")

	w = s.do(t, request{method: http.MethodGet, path: "/api/categories/9"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var list []domain.Category
	w = s.do(t, request{method: http.MethodGet, path: "/api/categories"})
	decode(t, w, &list)
	assert.Len(t, list, 1)
}

func TestListCategories_CacheFailureFallsBackToDatabase(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := newTestServer(t, db)
	_, err := s.deps.Categories.CreateCategory(context.Background(), service.CategoryInput{Name: "Music"})
	require.NoError(t, err)

	mock.ExpectGet("categories:all").SetErr(errors.New("connection refused"))
	w := s.do(t, request{method: http.MethodGet, path: "/api/categories"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), "Music")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, request{method: http.MethodGet, path: "/healthz"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"database":"ok"}`, w.Body.String())

	w = s.do(t, request{method: http.MethodGet, path: "/metrics"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
