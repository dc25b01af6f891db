package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Date parsing and cache TTL

	"event_management/internal/domain"  // Event models
	"event_management/internal/service" // Event rules
	"event_management/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// EventRequest represents the client-editable fields of an event.
// Registrations sent by clients are never read.
type EventRequest struct {
	Name        string    `json:"name" binding:"required"`        // Display name
	Description string    `json:"description" binding:"max=1000"` // Free text
	StartDate   time.Time `json:"startDate" binding:"required"`   // Start timestamp
	EndDate     time.Time `json:"endDate" binding:"required"`     // End timestamp
	Location    string    `json:"location"`                       // Venue
	ImageURL    string    `json:"imageUrl"`                       // Image reference
	Capacity    int       `json:"capacity" binding:"gte=0"`       // 0 means unlimited
	OrganizerID *uint     `json:"organizerId"`                    // Optional organizer
	CategoryIDs []uint    `json:"categoryIds"`                    // Omitted keeps categories on update
	Categories  []struct {
		ID uint `json:"id"`
	} `json:"categories"` // Alternative to categoryIds
}

// input converts the request into the service input
func (r EventRequest) input() service.EventInput {
	ids := r.CategoryIDs
	if ids == nil && r.Categories != nil {
		ids = make([]uint, 0, len(r.Categories))
		for _, c := range r.Categories {
			ids = append(ids, c.ID)
		}
	}
	return service.EventInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Capacity:    r.Capacity,
		OrganizerID: r.OrganizerID,
		CategoryIDs: ids,
	}
}

// cachedEventList serves a list from Redis or loads and caches it
func cachedEventList(c *gin.Context, rdb *redis.Client, ttl time.Duration, key string, load func(ctx context.Context) ([]domain.Event, error)) {
	ctx := c.Request.Context()
	var cached []domain.Event
	// If cached data found, return it
	if found, err := utils.GetCache(ctx, rdb, key, &cached); err == nil && found {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	} else if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	}
	events, err := load(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	// Cache the response for future requests
	if err := utils.SetCache(ctx, rdb, key, events, ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, events)
}

// invalidateEvents drops every cached event list
func invalidateEvents(ctx context.Context, rdb *redis.Client) {
	if err := utils.InvalidatePrefix(ctx, rdb, utils.EventsCachePrefix); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate event cache")
	}
}

// ListEventsHandler returns every event
func ListEventsHandler(events *service.EventService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedEventList(c, rdb, ttl, utils.EventsCachePrefix+"all", events.GetAllEvents)
	}
}

// UpcomingEventsHandler returns events that have not started yet. It is not
// cached: the result depends on the current time.
func UpcomingEventsHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := events.GetUpcomingEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetEventHandler returns one event
func GetEventHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		event, err := events.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// SearchEventsHandler matches ?keyword= against event names
func SearchEventsHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := events.SearchEvents(c.Request.Context(), c.Query("keyword"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// EventsByCategoryHandler lists the events of a category
func EventsByCategoryHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := events.GetEventsByCategory(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// EventsByOrganizerHandler lists the events of an organizer
func EventsByOrganizerHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := events.GetEventsByOrganizer(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates
func parseTimeParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

// EventsInRangeHandler lists events starting between ?from= and ?to=
func EventsInRangeHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := parseTimeParam(c.Query("from"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from"})
			return
		}
		to, err := parseTimeParam(c.Query("to"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to"})
			return
		}
		list, err := events.GetEventsInRange(c.Request.Context(), from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateEventHandler creates an event
func CreateEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		event, err := events.CreateEvent(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateEvents(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, event)
	}
}

// UpdateEventHandler overwrites an event
func UpdateEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req EventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		event, err := events.UpdateEvent(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateEvents(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, event)
	}
}

// DeleteEventHandler deletes an event and its registrations
func DeleteEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := events.DeleteEvent(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateEvents(c.Request.Context(), rdb)
		c.Status(http.StatusNoContent)
	}
}
