// Package repositories defines the repository interfaces for the content
// inventory. These repositories abstract the content-store details, keeping
// the reporting core decoupled from the database.
package repositories

import (
	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
)

// ItemRepository reads content items and their per-item relations.
type ItemRepository interface {
	Select(selection content.FilterSelection) ([]*content.ContentItem, error)
	DistinctStatuses(contentType string) ([]string, error)
	MetaValue(itemID int64, metaKey string) (string, error)
	TermsForItem(itemID int64, taxonomy string) ([]*content.Term, error)
	AncestorSlugs(itemID int64) ([]string, error)
	ListContentTypes() ([]*content.ContentType, error)
}

// TaxonomyRepository reads taxonomy dimensions and their terms.
type TaxonomyRepository interface {
	ListForContentType(contentType string) ([]*content.TaxonomyDimension, error)
	TermsForDimension(taxonomy string, hideEmpty bool) ([]*content.Term, error)
	AssignedItemCount(contentType, taxonomy string) (int, error)
}

// TemplateRepository reads the active theme's template registry and the
// effective-template usage of page items.
type TemplateRepository interface {
	Catalog() (map[string]string, error)
	CountByTemplate() (map[string]int, error)
}

// AttachmentRepository reads the stored media library.
type AttachmentRepository interface {
	ExtensionCounts() ([]content.ExtensionCount, error)
	FilePaths(limit int) ([]string, error)
}
