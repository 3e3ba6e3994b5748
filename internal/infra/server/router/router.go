// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-engine/backend/internal/integration/entrypoint/controller"
	"github.com/budget-engine/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	scheduleController *controller.ScheduleController
	forecastController *controller.ForecastController
	computeRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	scheduleController *controller.ScheduleController,
	forecastController *controller.ForecastController,
	computeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		scheduleController: scheduleController,
		forecastController: forecastController,
		computeRateLimiter: computeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Occurrence expansion routes
		if r.scheduleController != nil {
			occurrences := v1.Group("/occurrences")
			{
				occurrences.POST("/expand", r.scheduleController.ExpandOccurrences)
			}
		}

		// Forecast routes. The two compute endpoints walk every period and
		// are rate limited; the stored-forecast read is cache backed.
		if r.forecastController != nil {
			var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
			if r.computeRateLimiter != nil {
				limit = r.computeRateLimiter.Middleware()
			}

			v1.POST("/paycheck-periods", limit, r.forecastController.BuildPeriods)

			forecast := v1.Group("/forecast")
			{
				forecast.POST("/breakdowns", limit, r.forecastController.ComputeBreakdowns)
				forecast.GET("/breakdowns", r.forecastController.GetForecast)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
