// Package v1 wires the HTTP API surface.
package v1

import (
	"github.com/gin-gonic/gin"

	"defter/internal/infrastructure/http/v1/handlers"
	"defter/internal/infrastructure/http/v1/middleware"
	"defter/pkg/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Customers *handlers.CustomerHandler
	Invoices  *handlers.InvoiceHandler
	Reports   *handlers.ReportsHandler
	Health    *handlers.HealthHandler
}

// NewRouter builds the gin engine with the full middleware chain and
// all v1 routes mounted.
func NewRouter(log *logger.Logger, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	health := router.Group("/health")
	{
		health.GET("/live", h.Health.Live)
		health.GET("/ready", h.Health.Ready)
	}

	api := router.Group("/api/v1")
	{
		customers := api.Group("/customers")
		{
			customers.GET("", h.Customers.List)
			customers.POST("", h.Customers.Create)
			customers.GET("/:id", h.Customers.Get)
			customers.PUT("/:id", h.Customers.Update)
			customers.DELETE("/:id", h.Customers.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", h.Invoices.List)
			invoices.POST("", h.Invoices.Create)
			invoices.GET("/:id", h.Invoices.Get)
			invoices.PUT("/:id", h.Invoices.Update)
			invoices.DELETE("/:id", h.Invoices.Delete)
		}

		api.GET("/dashboard/summary", h.Reports.Summary)
	}

	return router
}
