package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sandlotio/ballflight/internal/api/handlers"
	"github.com/sandlotio/ballflight/internal/logging"
	"github.com/sandlotio/ballflight/internal/services"
)

// SetupRoutes wires the HTTP surface onto the router.
func SetupRoutes(router *gin.Engine, engine *services.Engine, log *logging.Logger) {
	health := handlers.NewHealthHandler(engine)
	router.GET("/health", health.HealthCheck)

	simulation := handlers.NewSimulationHandler(engine, log)
	analytics := handlers.NewAnalyticsHandler(engine, log)

	v1 := router.Group("/api/v1")
	{
		simulate := v1.Group("/simulate")
		{
			simulate.POST("/pitch", simulation.SimulatePitch)
			simulate.POST("/swing", simulation.SimulateSwing)
			simulate.POST("/take", simulation.SimulateTake)
		}

		players := v1.Group("/analytics")
		{
			players.GET("/:player", analytics.GetAnalytics)
			players.GET("/:player/zones", analytics.GetZones)
			players.GET("/:player/snapshot", analytics.GetSnapshot)
			players.POST("/:player/snapshot", analytics.RestoreSnapshot)
		}
	}
}
