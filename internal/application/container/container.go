// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/primordial-software/content-inventory-go/internal/application/services"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	persistence "github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/database"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	AuthService        *services.AuthService
	InventoryService   *services.InventoryService
	AggregationService *services.AggregationService
	ExportService      *services.ExportService

	// Infrastructure dependencies
	DB          *database.DB
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	itemRepo := persistence.NewItemRepository(db.DB, logger)
	taxonomyRepo := persistence.NewTaxonomyRepository(db.DB, logger)
	templateRepo := persistence.NewTemplateRepository(db.DB, logger)
	attachmentRepo := persistence.NewAttachmentRepository(db.DB, logger)

	return &Container{
		AuthService:        services.NewAuthService(logger, perfTracker),
		InventoryService:   services.NewInventoryService(itemRepo, taxonomyRepo, templateRepo, logger, perfTracker),
		AggregationService: services.NewAggregationService(taxonomyRepo, templateRepo, attachmentRepo, logger, perfTracker),
		ExportService:      services.NewExportService(logger, perfTracker),

		DB:          db,
		Logger:      logger,
		PerfTracker: perfTracker,
	}
}
