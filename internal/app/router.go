package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"busline/internal/handler"
	"busline/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BusHandler      *handler.BusHandler
	BookingHandler  *handler.BookingHandler
	SnapshotHandler *handler.SnapshotHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
// SnapshotHandler and RedisClient may be nil; the corresponding routes and
// middleware are skipped.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Bus catalog routes.
		buses := v1.Group("/buses")
		{
			buses.POST("", deps.BusHandler.CreateBus)
			buses.GET("", deps.BusHandler.GetAll)
			buses.GET("/:no", deps.BusHandler.GetBus)
			buses.GET("/:no/availability", deps.BusHandler.GetAvailability)
			buses.GET("/:no/image", deps.BusHandler.GetImage)
		}

		// Booking ledger routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.Create)
			bookings.POST("/cancel", deps.BookingHandler.Cancel)
			bookings.POST("/ticket", deps.BookingHandler.Ticket)
			bookings.GET("", deps.BookingHandler.GetAll)
		}

		// Snapshot route, only when the collaborator is configured.
		if deps.SnapshotHandler != nil {
			v1.POST("/snapshot", deps.SnapshotHandler.Create)
		}
	}

	return router
}
