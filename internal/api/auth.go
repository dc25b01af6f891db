package api

import (
	"context"  // Context for credential checks
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"event_management/internal/domain"     // User models
	"event_management/internal/middleware" // Principal access
	"event_management/internal/service"    // User rules
	"event_management/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email     string      `json:"email" binding:"required,email"`                // Login name
	Password  string      `json:"password" binding:"required"`                   // Plain text, hashed before storage
	FirstName string      `json:"firstName"`                                     // First name
	LastName  string      `json:"lastName"`                                      // Last name
	Role      domain.Role `json:"role" binding:"omitempty,oneof=USER ORGANIZER"` // Defaults to USER; admins are not self-registered
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"` // Changed only when different
	Password  string `json:"password"`                        // Changed only when non-empty
	FirstName string `json:"firstName"`                       // Always overwritten
	LastName  string `json:"lastName"`                        // Always overwritten
}

// LoginResponse describes the authenticated caller
type LoginResponse struct {
	Username      string   `json:"username"`      // Email of the caller
	Authorities   []string `json:"authorities"`   // ROLE_ prefixed roles
	Authenticated bool     `json:"authenticated"` // Always true on success
	Token         string   `json:"token"`         // Bearer token for later calls
}

// CredentialChecker adapts the user service to the auth middleware
func CredentialChecker(users *service.UserService) middleware.CredentialChecker {
	return middleware.CredentialCheckerFunc(func(ctx context.Context, email, password string) (domain.Principal, error) {
		user, err := users.Authenticate(ctx, email, password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return domain.Principal{}, middleware.ErrBadCredentials
		}
		if err != nil {
			return domain.Principal{}, err
		}
		return domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
	})
}

// RegisterHandler creates a user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		user, err := users.RegisterUser(c.Request.Context(), service.RegisterUserParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
		})
		if errors.Is(err, service.ErrAlreadyExists) {
			// Duplicate emails are a client mistake on this endpoint
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler reports the authenticated caller and issues a JWT
func LoginHandler(jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := middleware.PrincipalFrom(c) // Get principal from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(principal, jwtSecret, ttl)
		if err != nil {
			logrus.WithError(err).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, LoginResponse{
			Username:      principal.Email,
			Authorities:   principal.Authorities(),
			Authenticated: true,
			Token:         token,
		})
	}
}

// GetUserHandler returns one user
func GetUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		user, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler applies a partial update to a user
func UpdateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		user, err := users.UpdateUser(c.Request.Context(), id, service.UpdateUserParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
