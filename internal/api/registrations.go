package api

import (
	"net/http" // HTTP status codes

	"event_management/internal/service" // Registration rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterForEventHandler claims a seat on an event for a user
func RegisterForEventHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := idParam(c, "id")
		if !ok {
			return
		}
		userID, ok := idParam(c, "userId")
		if !ok {
			return
		}
		registration, err := events.RegisterForEvent(c.Request.Context(), eventID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, registration)
	}
}

// CancelRegistrationHandler cancels a registration
func CancelRegistrationHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := events.CancelRegistration(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// EventRegistrationsHandler lists the registrations of an event
func EventRegistrationsHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := events.ListEventRegistrations(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UserRegistrationsHandler lists the registrations made by a user
func UserRegistrationsHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := events.ListUserRegistrations(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
