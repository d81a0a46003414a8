package handlers

import (
	"net/http"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/application/services"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// InventoryHandlers contains the report and filter-discovery HTTP handlers
type InventoryHandlers struct {
	inventoryService   *services.InventoryService
	aggregationService *services.AggregationService
	logger             *logging.ChanneledLogger
	perfTracker        *performance.Tracker
}

// NewInventoryHandlers creates inventory handlers with injected dependencies
func NewInventoryHandlers(
	inventoryService *services.InventoryService,
	aggregationService *services.AggregationService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *InventoryHandlers {
	return &InventoryHandlers{
		inventoryService:   inventoryService,
		aggregationService: aggregationService,
		logger:             logger,
		perfTracker:        perfTracker,
	}
}

// GetInventory returns the full report for the requested filter selection:
// selection echo, headers, shaped rows, and the aggregate statistics for
// the content type. Dimensions with no assigned terms are absent from a
// row's termsByDimension map.
func (h *InventoryHandlers) GetInventory(c *gin.Context) {
	start := time.Now()
	h.logger.Content().Debug("Received inventory request", "method", c.Request.Method, "path", c.Request.URL.Path)

	selection := services.ParseSelection(c.Query)

	marker := h.perfTracker.StartOperation("get_inventory_request", selection.ContentType)
	defer marker.Complete()

	report, err := h.inventoryService.BuildReport(selection)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.aggregationService.Compute(selection.ContentType, report.Dimensions)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Perf().Info("Performance for GetInventory request",
		"duration", time.Since(start), "contentType", selection.ContentType, "success", true)
	h.logger.Content().Info("Inventory request completed",
		"contentType", selection.ContentType, "rows", report.TotalItems, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"stats":  stats,
	})
}

// GetFilters returns the filter dimensions available for the requested
// selection: content types, taxonomy dimensions, terms, statuses, and the
// template catalog for pages.
func (h *InventoryHandlers) GetFilters(c *gin.Context) {
	selection := services.ParseSelection(c.Query)

	marker := h.perfTracker.StartOperation("get_filters_request", selection.ContentType)
	defer marker.Complete()

	options, err := h.inventoryService.FilterDiscovery(selection)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"selection": selection,
		"options":   options,
	})
}
