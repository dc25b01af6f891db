package middleware

import (
	"context"  // Context for credential checks
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"event_management/internal/domain" // Principal and roles
	"event_management/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// principalKey is the gin context key holding the authenticated caller
const principalKey = "principal"

// ErrBadCredentials is what a CredentialChecker returns for a wrong email or password
var ErrBadCredentials = errors.New("invalid credentials")

// CredentialChecker verifies an email/password pair
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, email, password string) (domain.Principal, error)
}

// CredentialCheckerFunc adapts a function to CredentialChecker
type CredentialCheckerFunc func(ctx context.Context, email, password string) (domain.Principal, error)

// CheckCredentials implements CredentialChecker
func (f CredentialCheckerFunc) CheckCredentials(ctx context.Context, email, password string) (domain.Principal, error) {
	return f(ctx, email, password)
}

// AuthMiddleware accepts HTTP Basic credentials or a Bearer JWT and stores
// the resulting principal in the context
func AuthMiddleware(checker CredentialChecker, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
			claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
			if err != nil {
				// If parsing fails, abort with unauthorized status
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set(principalKey, claims.Principal()) // Store principal in context
		case strings.HasPrefix(authHeader, "Basic "):
			email, password, ok := c.Request.BasicAuth() // Decode Basic credentials
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Malformed Basic credentials"})
				return
			}
			principal, err := checker.CheckCredentials(c.Request.Context(), email, password)
			if errors.Is(err, ErrBadCredentials) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			if err != nil {
				logrus.WithError(err).Error("Credential check failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.Set(principalKey, principal) // Store principal in context
		default:
			c.Header("WWW-Authenticate", `Basic realm="event_management"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}

// PrincipalFrom returns the caller stored by AuthMiddleware
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// SetPrincipal stores p as the caller of the request
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
}
