// Package content provides the content-store repositories backing the
// inventory report.
package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/query"
	"github.com/primordial-software/content-inventory-go/pkg/config"
)

// maxAncestorDepth bounds the parent walk for hierarchical page links.
const maxAncestorDepth = 32

type ItemRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewItemRepository(db *sql.DB, logger *logging.ChanneledLogger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// Select returns the items matching the filter selection, grouped by item id
// so the many-valued term relation never duplicates a row. The template
// filter only applies to pages and the term filter only applies when a
// taxonomy dimension is selected.
func (r *ItemRepository) Select(selection content.FilterSelection) ([]*content.ContentItem, error) {
	spec := query.Select("content_items p", "p.id", "p.title", "p.slug", "p.content_type", "p.status", "p.parent_id").
		Where("p.content_type = ?", selection.ContentType)

	if selection.ContentType == "page" && selection.Template != content.All {
		spec.Join("LEFT JOIN item_meta pm ON p.id = pm.item_id AND pm.meta_key = ?", content.TemplateMetaKey).
			Where("COALESCE(pm.meta_value, ?) = ?", content.DefaultTemplateID, selection.Template)
	}

	if selection.Status != content.All {
		spec.Where("p.status = ?", selection.Status)
	}

	if selection.Taxonomy != content.All {
		spec.Join("LEFT JOIN term_relationships tr ON p.id = tr.item_id").
			Join("LEFT JOIN terms t ON tr.term_id = t.term_id").
			Where("t.taxonomy = ?", selection.Taxonomy)

		if selection.HasTermFilter() {
			spec.Where("t.term_id = ?", selection.TermID)
		}
	}

	spec.GroupBy("p.id").OrderBy("p.id")

	sqlStr, args := spec.SQL()

	start := time.Now()
	r.logger.Database().Debug("Executing item selection", "contentType", selection.ContentType)

	rows, err := r.db.Query(sqlStr, args...)
	if err != nil {
		r.logger.Database().Error("Item selection failed", "error", err.Error(), "contentType", selection.ContentType)
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var items []*content.ContentItem
	for rows.Next() {
		item := &content.ContentItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.ContentType, &item.Status, &item.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item rows: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(sqlStr, duration, selection.ContentType)
	}

	return items, nil
}

// DistinctStatuses returns every status value observed for the content type,
// ordered by status value. The "All" sentinel is prepended by the caller.
func (r *ItemRepository) DistinctStatuses(contentType string) ([]string, error) {
	sqlStr, args := query.Select("content_items", "DISTINCT status").
		Where("content_type = ?", contentType).
		OrderBy("status").
		SQL()

	rows, err := r.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

// MetaValue returns the metadata value for an item, or "" when unset.
func (r *ItemRepository) MetaValue(itemID int64, metaKey string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT meta_value FROM item_meta WHERE item_id = ? AND meta_key = ?`, itemID, metaKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch meta %s for item %d: %w", metaKey, itemID, err)
	}
	return value, nil
}

// TermsForItem returns the item's assigned terms within one dimension.
func (r *ItemRepository) TermsForItem(itemID int64, taxonomy string) ([]*content.Term, error) {
	rows, err := r.db.Query(`
		SELECT t.term_id, t.taxonomy, t.name
		FROM terms t
		JOIN term_relationships tr ON t.term_id = tr.term_id
		WHERE tr.item_id = ? AND t.taxonomy = ?
		ORDER BY t.name`, itemID, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms for item %d: %w", itemID, err)
	}
	defer rows.Close()

	var terms []*content.Term
	for rows.Next() {
		term := &content.Term{}
		if err := rows.Scan(&term.ID, &term.Taxonomy, &term.Name); err != nil {
			return nil, fmt.Errorf("failed to scan term row: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// AncestorSlugs returns the slugs from the topmost ancestor down to the item
// itself, for the hierarchical page-link rule.
func (r *ItemRepository) AncestorSlugs(itemID int64) ([]string, error) {
	var slugs []string
	currentID := itemID

	for depth := 0; currentID != 0 && depth < maxAncestorDepth; depth++ {
		var slug string
		var parentID int64
		err := r.db.QueryRow(`SELECT slug, parent_id FROM content_items WHERE id = ?`, currentID).Scan(&slug, &parentID)
		if err == sql.ErrNoRows {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ancestor of item %d: %w", itemID, err)
		}
		slugs = append([]string{slug}, slugs...)
		currentID = parentID
	}

	return slugs, nil
}

// ListContentTypes returns the public content types in registration order.
func (r *ItemRepository) ListContentTypes() ([]*content.ContentType, error) {
	rows, err := r.db.Query(`SELECT name, label, public FROM content_types WHERE public = 1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query content types: %w", err)
	}
	defer rows.Close()

	var types []*content.ContentType
	for rows.Next() {
		ct := &content.ContentType{}
		if err := rows.Scan(&ct.Name, &ct.Label, &ct.Public); err != nil {
			return nil, fmt.Errorf("failed to scan content type row: %w", err)
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}
