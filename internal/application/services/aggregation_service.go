package services

import (
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/domain/repositories"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/primordial-software/content-inventory-go/pkg/config"
	"golang.org/x/sync/errgroup"
)

// AggregationService computes the summary statistics shown alongside the
// inventory table. Which aggregation runs is decided by the content type's
// category: template usage for pages, taxonomy usage for classified types,
// media breakdown for attachments.
type AggregationService struct {
	taxonomies  repositories.TaxonomyRepository
	templates   repositories.TemplateRepository
	attachments repositories.AttachmentRepository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker

	sizeSampleCap int
	statWorkers   int
}

// NewAggregationService creates an aggregation service with injected repositories
func NewAggregationService(
	taxonomies repositories.TaxonomyRepository,
	templates repositories.TemplateRepository,
	attachments repositories.AttachmentRepository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *AggregationService {
	return &AggregationService{
		taxonomies:    taxonomies,
		templates:     templates,
		attachments:   attachments,
		logger:        logger,
		perfTracker:   perfTracker,
		sizeSampleCap: config.AttachmentSizeSampleCap,
		statWorkers:   config.AttachmentStatWorkers,
	}
}

// Compute returns the aggregate statistics for the content type. The
// dimensions argument is the post-denylist set already resolved for it.
func (s *AggregationService) Compute(contentType string, dimensions []*content.TaxonomyDimension) (*content.AggregateStats, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_aggregates", contentType)
	defer marker.Complete()

	stats := &content.AggregateStats{}

	var err error
	switch content.CategoryOf(contentType) {
	case content.CategoryTemplated:
		stats.Templates, err = s.templateUsage()
	case content.CategoryMedia:
		stats.Media, err = s.mediaStats()
	case content.CategoryTaxonomic:
		stats.Taxonomies, err = s.taxonomyUsage(contentType, dimensions)
	}
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	marker.SetSuccess(true)
	s.logger.Content().Debug("Aggregates computed", "contentType", contentType, "duration", time.Since(start))
	return stats, nil
}

// templateUsage counts page items per effective template, most used first.
// Ids absent from the current template registry are dropped from the
// breakdown; the items themselves still exist and still count toward the
// report total. Zero-count templates are omitted.
func (s *AggregationService) templateUsage() ([]content.TemplateUsage, error) {
	catalog, err := s.templates.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	counts, err := s.templates.CountByTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to count template usage: %w", err)
	}

	usage := make([]content.TemplateUsage, 0, len(counts))
	for id, count := range counts {
		label, known := catalog[id]
		if !known || count == 0 {
			continue
		}
		usage = append(usage, content.TemplateUsage{TemplateID: id, Label: label, Count: count})
	}

	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Label < usage[j].Label
	})
	return usage, nil
}

// taxonomyUsage summarizes each dimension that has at least one non-empty
// term: the term names and the distinct count of items carrying any
// assignment in that dimension.
func (s *AggregationService) taxonomyUsage(contentType string, dimensions []*content.TaxonomyDimension) ([]*content.TaxonomyUsage, error) {
	var usage []*content.TaxonomyUsage
	for _, dimension := range dimensions {
		terms, err := s.taxonomies.TermsForDimension(dimension.Name, true)
		if err != nil {
			return nil, fmt.Errorf("failed to load terms for %s: %w", dimension.Name, err)
		}
		if len(terms) == 0 {
			continue
		}

		count, err := s.taxonomies.AssignedItemCount(contentType, dimension.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to count assignments for %s: %w", dimension.Name, err)
		}

		names := make([]string, 0, len(terms))
		for _, term := range terms {
			names = append(names, term.Name)
		}

		usage = append(usage, &content.TaxonomyUsage{
			Dimension:     dimension,
			AssignedItems: count,
			TermNames:     names,
		})
	}
	return usage, nil
}

// mediaStats breaks the attachment library down by MIME-derived extension
// and sums the on-disk size of at most the first sizeSampleCap attachments.
// The sum is an approximation by design; files missing from storage are
// skipped, contributing zero.
func (s *AggregationService) mediaStats() (*content.MediaStats, error) {
	extensions, err := s.attachments.ExtensionCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load extension counts: %w", err)
	}

	paths, err := s.attachments.FilePaths(s.sizeSampleCap)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment paths: %w", err)
	}

	var totalBytes atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.statWorkers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return nil
			}
			totalBytes.Add(info.Size())
			return nil
		})
	}
	// Workers only ever return nil; Wait is a join point.
	_ = g.Wait()

	return &content.MediaStats{
		Extensions:    extensions,
		SampledItems:  len(paths),
		SampledBytes:  totalBytes.Load(),
		FormattedSize: FormatFileSize(totalBytes.Load()),
	}, nil
}

// FormatFileSize renders a byte count with binary units and two-decimal
// precision, using the largest unit whose threshold the value meets.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(bytes)/(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
