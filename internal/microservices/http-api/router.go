// Package httpapi assembles the HTTP API: services over a storage driver,
// handlers, and the gin engine with its middleware chain.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"mindwell/internal/cache"
	"mindwell/internal/microservices/http-api/handler"
	"mindwell/internal/microservices/http-api/middleware"
	"mindwell/internal/microservices/http-api/repository"
	"mindwell/internal/microservices/http-api/service"
	"mindwell/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

// Repositories is one storage driver's implementation of every store.
type Repositories struct {
	Resources     repository.ResourceRepository
	Interactions  repository.InteractionRepository
	Bookings      repository.BookingRepository
	Notifications repository.NotificationRepository
}

type Services struct {
	Resources     service.ResourceService
	Interactions  service.InteractionService
	Ratings       service.RatingService
	Bookings      service.BookingService
	Notifications service.NotificationService
}

func NewServices(repos Repositories, c *cache.Cache, logger *slog.Logger) Services {
	notifications := service.NewNotificationService(repos.Notifications, logger)
	return Services{
		Resources:     service.NewResourceService(repos.Resources, c, logger),
		Interactions:  service.NewInteractionService(repos.Interactions, logger),
		Ratings:       service.NewRatingService(repos.Resources, logger),
		Bookings:      service.NewBookingService(repos.Bookings, notifications, logger),
		Notifications: notifications,
	}
}

type RouterConfig struct {
	Tokens         *auth.TokenManager
	Logger         *slog.Logger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	Checks         map[string]handler.Check
}

// NewRouter builds the engine serving /api/v1.
func NewRouter(svcs Services, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)

	authn := middleware.AuthMiddleware(cfg.Tokens)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware()

	api := r.Group("/api/v1")
	handler.NewHealthHandler(cfg.Checks).RegisterRoutes(api)

	resources := handler.NewResourceHandler(svcs.Resources, logger)
	resources.RegisterRoutes(api.Group("/resources"))
	resources.RegisterAdminRoutes(api.Group("/resources", authn, middleware.RequireAdmin()))

	handler.NewInteractionHandler(svcs.Interactions, svcs.Ratings, svcs.Resources, logger).
		RegisterRoutes(api.Group("/resources", authn, limiter))

	handler.NewBookingHandler(svcs.Bookings, logger).
		RegisterRoutes(api.Group("/bookings", authn, limiter))

	handler.NewNotificationHandler(svcs.Notifications, logger).
		RegisterRoutes(api.Group("/notifications", authn))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})
	return r
}
