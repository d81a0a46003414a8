// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/primordial-software/content-inventory-go/internal/application/container"
	"github.com/primordial-software/content-inventory-go/internal/presentation/http/handlers"
	"github.com/primordial-software/content-inventory-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	inventoryHandlers := handlers.NewInventoryHandlers(container.InventoryService, container.AggregationService, container.Logger, container.PerfTracker)
	exportHandlers := handlers.NewExportHandlers(container.InventoryService, container.ExportService, container.Logger, container.PerfTracker)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		inventory := api.Group("/inventory")
		inventory.Use(authHandlers.AuthMiddleware())
		{
			inventory.GET("", inventoryHandlers.GetInventory)
			inventory.GET("/filters", inventoryHandlers.GetFilters)
			inventory.POST("/export", authHandlers.AdminOnlyMiddleware(), exportHandlers.PostExport)
		}
	}

	return r
}
