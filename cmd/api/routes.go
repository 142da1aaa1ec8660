package main

import (
	"coaching-calendar/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/slots", h.ListSlots)

		api.GET("/calls", h.ListCalls)
		api.POST("/calls", h.BookCall)
		api.DELETE("/calls/:id", h.DeleteCall)

		api.GET("/agenda", h.GetAgenda)

		api.GET("/clients", h.ListClients)
	}
}
