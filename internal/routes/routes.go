// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"insuro/internal/handlers"
	"insuro/internal/middleware"
	"insuro/internal/models"
	"insuro/internal/utils/response"
)

// Handlers bundles every HTTP handler the router needs.
type Handlers struct {
	Claims     *handlers.ClaimHandler
	Assessment *handlers.AssessmentHandler
	Admin      *handlers.AdminHandler
	Health     *handlers.HealthHandler
}

type Options struct {
	JWTSecret  string
	RateLimit  int
	RateWindow time.Duration
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers, opts Options) {
	app.Get("/health", h.Health.HealthCheck)

	auth := middleware.NewAuthMiddleware(opts.JWTSecret)
	api := app.Group("/api", auth.Handler)
	scoring := scoringLimiter(opts)

	claims := api.Group("/claims")
	claims.Post("/", middleware.HasPermission(models.PermissionClaimWrite), h.Claims.Submit)
	claims.Get("/", middleware.HasPermission(models.PermissionClaimRead), h.Claims.List)
	claims.Get("/:id", middleware.HasPermission(models.PermissionClaimRead), h.Claims.Get)
	claims.Post("/:id/files", middleware.HasPermission(models.PermissionClaimWrite), h.Claims.AttachFile)
	claims.Post("/:id/assess", scoring, middleware.HasPermission(models.PermissionClaimAssess), h.Assessment.AssessStored)

	api.Post("/assess", scoring, middleware.HasPermission(models.PermissionClaimAssess), h.Assessment.Assess)
	api.Post("/verify", scoring, middleware.HasPermission(models.PermissionClaimVerify), h.Assessment.Verify)

	admin := api.Group("/admin", middleware.RequireReviewer)
	admin.Post("/claims/:id/approve", middleware.HasPermission(models.PermissionClaimReview), h.Admin.Approve)
	admin.Post("/claims/:id/reject", middleware.HasPermission(models.PermissionClaimReview), h.Admin.Reject)
	admin.Post("/fraud-review", middleware.HasPermission(models.PermissionClaimReview), h.Admin.FraudReview)
	admin.Get("/stats", middleware.HasPermission(models.PermissionStatsRead), h.Admin.Stats)
}

// scoringLimiter throttles the scoring endpoints per caller, falling back
// to the client IP.
func scoringLimiter(opts Options) fiber.Handler {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = 30
	}
	window := opts.RateWindow
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if claims := middleware.Claims(c); claims != nil {
				return "user:" + claims.Identity()
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		},
	})
}
