package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/security"
	"github.com/primordial-software/content-inventory-go/pkg/config"
)

// newlineStripper removes CR/LF from free-text fields so the CSV stays
// well-formed under a naive reader. Stripping, not escaping, matches the
// table view's single-line rendering.
var newlineStripper = strings.NewReplacer("\r", "", "\n", "")

// ExportService serializes an inventory report to a CSV file for delivery.
// Once the file is handed to the delivery collaborator the service's
// responsibility ends; Cleanup removes the temp artifact afterwards.
type ExportService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker

	exportDir string
}

// NewExportService creates an export service writing into the configured directory
func NewExportService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ExportService {
	return &ExportService{
		logger:      logger,
		perfTracker: perfTracker,
		exportDir:   config.ExportDir,
	}
}

// ExportFile describes a serialized report: where it lives on disk and the
// advisory filename for delivery.
type ExportFile struct {
	Path     string
	Filename string
}

// WriteCSV serializes the report to a temp file in the export directory.
// On any write error the partial file is removed before returning.
func (s *ExportService) WriteCSV(report *content.InventoryReport) (*ExportFile, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("export_csv", report.Selection.ContentType)
	defer marker.Complete()

	path := filepath.Join(s.exportDir, "inventory-"+security.GenerateULID()+".csv")

	file, err := os.Create(path)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(report.Headers); err != nil {
		file.Close()
		os.Remove(path)
		marker.SetError(err)
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, row := range report.Rows {
		if err := writer.Write(csvRecord(row, report.Selection.ContentType, report.Dimensions)); err != nil {
			file.Close()
			os.Remove(path)
			marker.SetError(err)
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		os.Remove(path)
		marker.SetError(err)
		return nil, fmt.Errorf("failed to flush export file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		marker.SetError(err)
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	filename := fmt.Sprintf("%s_inventory_%s.csv",
		report.Selection.ContentType, time.Now().UTC().Format("2006-01-02"))

	marker.SetSuccess(true)
	s.logger.Export().Info("CSV export written",
		"filename", filename, "rows", len(report.Rows), "duration", time.Since(start))

	return &ExportFile{Path: path, Filename: filename}, nil
}

// Cleanup removes the temp artifact after delivery. Safe to call on error
// paths; a missing file is not an error.
func (s *ExportService) Cleanup(file *ExportFile) {
	if file == nil {
		return
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Export().Warn("Failed to remove export temp file", "path", file.Path, "error", err.Error())
	}
}

// csvRecord renders one inventory row in header order: URL, ID, Title,
// Post Name, Status, the template label for pages, then one field per
// dimension label. Dimensions without assigned terms serialize as "".
func csvRecord(row *content.InventoryRow, contentType string, dimensions []*content.TaxonomyDimension) []string {
	record := []string{
		row.URL,
		strconv.FormatInt(row.ID, 10),
		newlineStripper.Replace(row.Title),
		newlineStripper.Replace(row.Slug),
		row.Status,
	}

	if contentType == "page" {
		record = append(record, newlineStripper.Replace(row.TemplateLabel))
	}

	for _, dimension := range dimensions {
		record = append(record, newlineStripper.Replace(row.TermsByDimension[dimension.Label]))
	}

	return record
}
