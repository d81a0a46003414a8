package handlers

import (
	"net/http"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/application/services"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// ExportHandlers contains the CSV export HTTP handler
type ExportHandlers struct {
	inventoryService *services.InventoryService
	exportService    *services.ExportService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewExportHandlers creates export handlers with injected dependencies
func NewExportHandlers(
	inventoryService *services.InventoryService,
	exportService *services.ExportService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *ExportHandlers {
	return &ExportHandlers{
		inventoryService: inventoryService,
		exportService:    exportService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// PostExport serializes the report for the posted filter selection to CSV
// and streams it as a download. The rows come from the same BuildReport
// path as the table view, so the two channels can never diverge. The temp
// file is removed after delivery, success or not.
func (h *ExportHandlers) PostExport(c *gin.Context) {
	start := time.Now()
	h.logger.Export().Debug("Received export request", "method", c.Request.Method, "path", c.Request.URL.Path)

	selection := services.ParseSelection(c.PostForm)

	marker := h.perfTracker.StartOperation("export_request", selection.ContentType)
	defer marker.Complete()

	report, err := h.inventoryService.BuildReport(selection)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	file, err := h.exportService.WriteCSV(report)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating export file."})
		return
	}
	defer h.exportService.Cleanup(file)

	marker.SetSuccess(true)
	h.logger.Export().Info("Export request completed",
		"contentType", selection.ContentType, "rows", report.TotalItems, "duration", time.Since(start))

	c.FileAttachment(file.Path, file.Filename)
}
