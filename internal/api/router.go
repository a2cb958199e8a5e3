// Package api wires the HTTP surface: routes, handlers, middleware.
package api

import (
	"github.com/gin-gonic/gin"

	"ridesim/internal/api/handlers"
	"ridesim/internal/api/middleware"
)

type Router struct {
	riderHandler      *handlers.RiderHandler
	driverHandler     *handlers.DriverHandler
	simulationHandler *handlers.SimulationHandler
}

func NewRouter(
	riderHandler *handlers.RiderHandler,
	driverHandler *handlers.DriverHandler,
	simulationHandler *handlers.SimulationHandler,
) *Router {
	return &Router{
		riderHandler:      riderHandler,
		driverHandler:     driverHandler,
		simulationHandler: simulationHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	riders := engine.Group("/riders")
	{
		riders.POST("/request", r.riderHandler.RequestRide)
		riders.POST("/:id/cancel", r.riderHandler.CancelRide)
		riders.GET("/:id", r.riderHandler.GetRider)
		riders.GET("", r.riderHandler.ListRiders)
	}

	drivers := engine.Group("/drivers")
	{
		drivers.POST("/available", r.driverHandler.AnnounceAvailable)
		drivers.GET("/:id", r.driverHandler.GetDriver)
		drivers.GET("", r.driverHandler.ListDrivers)
	}

	sim := engine.Group("/simulation")
	{
		sim.POST("/run", r.simulationHandler.RunScenario)
		sim.GET("/runs", r.simulationHandler.ListRuns)
		sim.GET("/runs/:id", r.simulationHandler.GetRun)
	}
}
