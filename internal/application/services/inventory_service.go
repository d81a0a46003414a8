package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/domain/repositories"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/query"
	"github.com/primordial-software/content-inventory-go/pkg/config"
)

// InventoryService runs the filter selection against the content store and
// shapes the matching items into the canonical per-item records. The table
// view and the CSV export both consume its output; neither path filters or
// shapes on its own.
type InventoryService struct {
	items       repositories.ItemRepository
	taxonomies  repositories.TaxonomyRepository
	templates   repositories.TemplateRepository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker

	baseURL string
}

// NewInventoryService creates an inventory service with injected repositories
func NewInventoryService(
	items repositories.ItemRepository,
	taxonomies repositories.TaxonomyRepository,
	templates repositories.TemplateRepository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *InventoryService {
	return &InventoryService{
		items:       items,
		taxonomies:  taxonomies,
		templates:   templates,
		logger:      logger,
		perfTracker: perfTracker,
		baseURL:     config.SiteBaseURL,
	}
}

// ParseSelection builds a sanitized filter selection from caller-supplied
// parameters. The get function looks a parameter up by name and returns ""
// when absent. Free text is stripped of control characters; the term id is
// coerced to an integer or treated as the "All" sentinel. A template filter
// on a non-page content type and a term filter without a taxonomy are
// neutralized here.
func ParseSelection(get func(string) string) content.FilterSelection {
	selection := content.FilterSelection{
		ContentType: query.SanitizeText(get("post_type")),
		Taxonomy:    query.SanitizeText(get("taxonomy")),
		Status:      query.SanitizeText(get("status")),
		Template:    query.SanitizeText(get("template")),
	}

	if selection.ContentType == "" {
		selection.ContentType = config.DefaultContentType
	}
	if selection.Taxonomy == "" {
		selection.Taxonomy = content.All
	}
	if selection.Status == "" {
		selection.Status = content.All
	}
	if selection.Template == "" || selection.ContentType != "page" {
		selection.Template = content.All
	}

	if id, ok := query.SanitizeID(get("term")); ok && selection.Taxonomy != content.All {
		selection.TermID = id
	}

	return selection
}

// BuildReport executes the selection and returns the shaped inventory rows
// together with the active headers and filter context.
func (s *InventoryService) BuildReport(selection content.FilterSelection) (*content.InventoryReport, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("build_report", selection.ContentType)
	defer marker.Complete()

	dimensions, err := s.taxonomies.ListForContentType(selection.ContentType)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to resolve taxonomy dimensions: %w", err)
	}

	statuses, err := s.items.DistinctStatuses(selection.ContentType)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to resolve statuses: %w", err)
	}
	statuses = append([]string{content.All}, statuses...)

	var catalog map[string]string
	if selection.ContentType == "page" {
		catalog, err = s.templates.Catalog()
		if err != nil {
			marker.SetError(err)
			return nil, fmt.Errorf("failed to load template catalog: %w", err)
		}
	}

	items, err := s.items.Select(selection)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to select items: %w", err)
	}

	rows := make([]*content.InventoryRow, 0, len(items))
	for _, item := range items {
		row, err := s.shapeRow(item, catalog, dimensions)
		if err != nil {
			marker.SetError(err)
			return nil, err
		}
		rows = append(rows, row)
	}

	marker.SetSuccess(true)
	marker.AddMetadata("rowCount", len(rows))
	s.logger.Content().Info("Inventory report built",
		"contentType", selection.ContentType, "rows", len(rows), "duration", time.Since(start))

	return &content.InventoryReport{
		Selection:  selection,
		Headers:    BuildHeaders(selection.ContentType, dimensions),
		Dimensions: dimensions,
		Statuses:   statuses,
		Rows:       rows,
		TotalItems: len(rows),
	}, nil
}

// shapeRow enriches one raw item with its URL, template label, and the
// sparse dimension-label → joined-term-names mapping.
func (s *InventoryService) shapeRow(item *content.ContentItem, catalog map[string]string, dimensions []*content.TaxonomyDimension) (*content.InventoryRow, error) {
	row := &content.InventoryRow{
		ID:               item.ID,
		Title:            item.Title,
		Slug:             item.Slug,
		Status:           item.Status,
		TermsByDimension: make(map[string]string),
	}

	url, err := s.resolveURL(item)
	if err != nil {
		return nil, err
	}
	row.URL = url

	if item.ContentType == "page" {
		templateID, err := s.items.MetaValue(item.ID, content.TemplateMetaKey)
		if err != nil {
			return nil, err
		}
		if templateID == "" {
			templateID = content.DefaultTemplateID
		}
		if label, known := catalog[templateID]; known {
			row.TemplateLabel = label
		} else {
			row.TemplateLabel = content.UnknownTemplateLabel
		}
	}

	for _, dimension := range dimensions {
		terms, err := s.items.TermsForItem(item.ID, dimension.Name)
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			continue
		}
		names := make([]string, 0, len(terms))
		for _, term := range terms {
			names = append(names, term.Name)
		}
		row.TermsByDimension[dimension.Label] = strings.Join(names, ", ")
	}

	return row, nil
}

// resolveURL applies the content type's native permalink rule: pages use the
// hierarchical page-link rule, every other type the generic permalink rule.
func (s *InventoryService) resolveURL(item *content.ContentItem) (string, error) {
	if item.ContentType == "page" {
		slugs, err := s.items.AncestorSlugs(item.ID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve page link for item %d: %w", item.ID, err)
		}
		return s.baseURL + "/" + strings.Join(slugs, "/"), nil
	}
	return s.baseURL + "/" + item.ContentType + "/" + item.Slug, nil
}

// BuildHeaders returns the active column headers for a selection: the fixed
// item columns, the template column for pages, then one column per
// dimension label in store order.
func BuildHeaders(contentType string, dimensions []*content.TaxonomyDimension) []string {
	headers := []string{"URL", "ID", "Title", "Post Name", "Status"}
	if contentType == "page" {
		headers = append(headers, "Template")
	}
	for _, dimension := range dimensions {
		headers = append(headers, dimension.Label)
	}
	return headers
}

// FilterOptions is the data a filter UI needs to render its controls for
// the current selection.
type FilterOptions struct {
	ContentTypes []*content.ContentType       `json:"contentTypes"`
	Dimensions   []*content.TaxonomyDimension `json:"dimensions"`
	Terms        []*content.Term              `json:"terms"`
	Statuses     []string                     `json:"statuses"`
	Templates    map[string]string            `json:"templates,omitempty"`
}

// FilterDiscovery resolves the available filter dimensions for a selection:
// public content types, applicable taxonomy dimensions, the selected
// dimension's terms, observed statuses, and the template catalog for pages.
func (s *InventoryService) FilterDiscovery(selection content.FilterSelection) (*FilterOptions, error) {
	contentTypes, err := s.items.ListContentTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to list content types: %w", err)
	}

	dimensions, err := s.taxonomies.ListForContentType(selection.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve taxonomy dimensions: %w", err)
	}

	var terms []*content.Term
	if selection.Taxonomy != content.All {
		terms, err = s.taxonomies.TermsForDimension(selection.Taxonomy, false)
		if err != nil {
			return nil, fmt.Errorf("failed to load terms: %w", err)
		}
	}

	statuses, err := s.items.DistinctStatuses(selection.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve statuses: %w", err)
	}
	statuses = append([]string{content.All}, statuses...)

	options := &FilterOptions{
		ContentTypes: contentTypes,
		Dimensions:   dimensions,
		Terms:        terms,
		Statuses:     statuses,
	}

	if selection.ContentType == "page" {
		options.Templates, err = s.templates.Catalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load template catalog: %w", err)
		}
	}

	return options, nil
}
