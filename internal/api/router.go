package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache and token lifetimes

	"event_management/internal/domain"     // Roles
	"event_management/internal/middleware" // Auth, logging and metrics middleware
	"event_management/internal/service"    // Business services
	"event_management/internal/utils"      // Redis health check

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"gorm.io/gorm"                                            // GORM ORM library
)

// Deps holds everything the HTTP layer needs
type Deps struct {
	DB         *gorm.DB      // Used by the health check only
	Redis      *redis.Client // Optional, nil disables caching
	CacheTTL   time.Duration // TTL of cached responses
	JWTSecret  string        // HS256 signing key
	JWTTTL     time.Duration // Lifetime of issued tokens
	Users      *service.UserService
	Events     *service.EventService
	Categories *service.CategoryService
	Bookings   *service.BookingService
	Payments   *service.PaymentService
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(), middleware.Metrics())

	auth := middleware.AuthMiddleware(CredentialChecker(d.Users), d.JWTSecret)

	r.GET("/healthz", HealthHandler(d.DB, d.Redis))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")

	// Auth and user routes
	apiGroup.POST("/auth/login", auth, LoginHandler(d.JWTSecret, d.JWTTTL))
	apiGroup.POST("/users/register", RegisterHandler(d.Users))
	users := apiGroup.Group("/users", auth)
	users.GET("", ListUsersHandler(d.Users))
	users.GET("/:id", GetUserHandler(d.Users))
	users.PUT("/:id", middleware.RequireSelfOrRole("id", domain.RoleAdmin), UpdateUserHandler(d.Users))
	users.GET("/:id/registrations", UserRegistrationsHandler(d.Events))

	// Event routes
	events := apiGroup.Group("/events")
	events.GET("", ListEventsHandler(d.Events, d.Redis, d.CacheTTL))
	events.GET("/upcoming", UpcomingEventsHandler(d.Events))
	events.GET("/search", SearchEventsHandler(d.Events))
	events.GET("/range", EventsInRangeHandler(d.Events))
	events.GET("/category/:id", EventsByCategoryHandler(d.Events))
	events.GET("/organizer/:id", EventsByOrganizerHandler(d.Events))
	events.GET("/:id", GetEventHandler(d.Events))
	events.POST("", CreateEventHandler(d.Events, d.Redis))
	events.PUT("/:id", UpdateEventHandler(d.Events, d.Redis))
	events.DELETE("/:id", DeleteEventHandler(d.Events, d.Redis))
	events.GET("/:id/registrations", EventRegistrationsHandler(d.Events))
	events.POST("/:id/register/:userId", RegisterForEventHandler(d.Events))
	events.DELETE("/registrations/:id", CancelRegistrationHandler(d.Events))

	// Category routes
	categories := apiGroup.Group("/categories")
	categories.GET("", ListCategoriesHandler(d.Categories, d.Redis, d.CacheTTL))
	categories.GET("/:id", GetCategoryHandler(d.Categories))
	categories.POST("", CreateCategoryHandler(d.Categories, d.Redis))
	categories.PUT("/:id", UpdateCategoryHandler(d.Categories, d.Redis))
	categories.DELETE("/:id", DeleteCategoryHandler(d.Categories, d.Redis))

	// Booking and payment routes (authenticated)
	bookings := apiGroup.Group("/bookings", auth)
	bookings.POST("", CreateBookingHandler(d.Bookings))
	bookings.GET("/:id", GetBookingHandler(d.Bookings))
	bookings.GET("/:id/status", GetBookingStatusHandler(d.Bookings))
	payments := apiGroup.Group("/payments", auth)
	payments.POST("", MakePaymentHandler(d.Payments))
	payments.GET("/:id/status", GetPaymentStatusHandler(d.Payments))

	// Admin routes (authenticated, admin only)
	admin := apiGroup.Group("/admin", auth, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", AdminListUsersHandler(d.Users, d.Redis, d.CacheTTL))
}

// HealthHandler reports whether the database and, when configured, Redis respond
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		checks := gin.H{"database": "ok"}
		status := http.StatusOK
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := utils.RedisHealthCheck(ctx, rdb); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, checks)
	}
}
