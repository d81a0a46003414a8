package services

import (
	"log/slog"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
)

// quietLogger builds a channeled logger that stays silent during tests.
func quietLogger() *logging.ChanneledLogger {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.DefaultLevel = slog.LevelError + 4
	logger, err := logging.NewChanneledLogger(cfg)
	if err != nil {
		panic(err)
	}
	return logger
}

func testTracker() *performance.Tracker {
	return performance.NewTracker()
}

// fakeItemRepo serves canned items and relations.
type fakeItemRepo struct {
	items         []*content.ContentItem
	statuses      []string
	meta          map[int64]map[string]string
	termsByItem   map[int64]map[string][]*content.Term
	ancestorSlugs map[int64][]string
	contentTypes  []*content.ContentType
}

func (f *fakeItemRepo) Select(selection content.FilterSelection) ([]*content.ContentItem, error) {
	var out []*content.ContentItem
	for _, item := range f.items {
		if item.ContentType == selection.ContentType {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) DistinctStatuses(contentType string) ([]string, error) {
	return f.statuses, nil
}

func (f *fakeItemRepo) MetaValue(itemID int64, metaKey string) (string, error) {
	return f.meta[itemID][metaKey], nil
}

func (f *fakeItemRepo) TermsForItem(itemID int64, taxonomy string) ([]*content.Term, error) {
	return f.termsByItem[itemID][taxonomy], nil
}

func (f *fakeItemRepo) AncestorSlugs(itemID int64) ([]string, error) {
	return f.ancestorSlugs[itemID], nil
}

func (f *fakeItemRepo) ListContentTypes() ([]*content.ContentType, error) {
	return f.contentTypes, nil
}

// fakeTaxonomyRepo serves canned dimensions and terms.
type fakeTaxonomyRepo struct {
	dimensions   []*content.TaxonomyDimension
	termsByDim   map[string][]*content.Term
	assignCounts map[string]int
}

func (f *fakeTaxonomyRepo) ListForContentType(contentType string) ([]*content.TaxonomyDimension, error) {
	return f.dimensions, nil
}

func (f *fakeTaxonomyRepo) TermsForDimension(taxonomy string, hideEmpty bool) ([]*content.Term, error) {
	return f.termsByDim[taxonomy], nil
}

func (f *fakeTaxonomyRepo) AssignedItemCount(contentType, taxonomy string) (int, error) {
	return f.assignCounts[taxonomy], nil
}

// fakeTemplateRepo serves a canned catalog and raw counts.
type fakeTemplateRepo struct {
	catalog map[string]string
	counts  map[string]int
}

func (f *fakeTemplateRepo) Catalog() (map[string]string, error) {
	catalog := make(map[string]string, len(f.catalog))
	for id, label := range f.catalog {
		catalog[id] = label
	}
	return catalog, nil
}

func (f *fakeTemplateRepo) CountByTemplate() (map[string]int, error) {
	return f.counts, nil
}

// fakeAttachmentRepo serves canned extension counts and file paths.
type fakeAttachmentRepo struct {
	extensions []content.ExtensionCount
	paths      []string
}

func (f *fakeAttachmentRepo) ExtensionCounts() ([]content.ExtensionCount, error) {
	return f.extensions, nil
}

func (f *fakeAttachmentRepo) FilePaths(limit int) ([]string, error) {
	if limit < len(f.paths) {
		return f.paths[:limit], nil
	}
	return f.paths, nil
}
