package content

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
)

// excludedDimensions is the permanent denylist: the two default tag-like
// dimensions never appear in the inventory, regardless of content type.
var excludedDimensions = map[string]bool{
	"post_tag":    true,
	"post_format": true,
}

type TaxonomyRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewTaxonomyRepository(db *sql.DB, logger *logging.ChanneledLogger) *TaxonomyRepository {
	return &TaxonomyRepository{
		db:     db,
		logger: logger,
	}
}

// ListForContentType returns the dimensions registered for the content type
// in registration order, minus the permanent denylist. An unknown content
// type yields an empty set, not an error.
func (r *TaxonomyRepository) ListForContentType(contentType string) ([]*content.TaxonomyDimension, error) {
	rows, err := r.db.Query(`SELECT name, label, content_types FROM taxonomies ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxonomies: %w", err)
	}
	defer rows.Close()

	var dimensions []*content.TaxonomyDimension
	for rows.Next() {
		var name, label, contentTypes string
		if err := rows.Scan(&name, &label, &contentTypes); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy row: %w", err)
		}
		if excludedDimensions[name] {
			continue
		}
		if !appliesTo(contentTypes, contentType) {
			continue
		}
		dimensions = append(dimensions, &content.TaxonomyDimension{Name: name, Label: label})
	}
	return dimensions, rows.Err()
}

// TermsForDimension returns the terms of one dimension ordered by name.
// With hideEmpty set, only terms assigned to at least one item are returned.
func (r *TaxonomyRepository) TermsForDimension(taxonomy string, hideEmpty bool) ([]*content.Term, error) {
	sqlStr := `SELECT t.term_id, t.taxonomy, t.name FROM terms t WHERE t.taxonomy = ?`
	if hideEmpty {
		sqlStr += ` AND EXISTS (SELECT 1 FROM term_relationships tr WHERE tr.term_id = t.term_id)`
	}
	sqlStr += ` ORDER BY t.name`

	rows, err := r.db.Query(sqlStr, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms for taxonomy %s: %w", taxonomy, err)
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

// AssignedItemCount counts the distinct items of the content type with at
// least one term assigned in the dimension. An item with several terms in
// the same dimension counts once.
func (r *TaxonomyRepository) AssignedItemCount(contentType, taxonomy string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT p.id)
		FROM content_items p
		JOIN term_relationships tr ON p.id = tr.item_id
		JOIN terms t ON tr.term_id = t.term_id
		WHERE p.content_type = ? AND t.taxonomy = ?`, contentType, taxonomy).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments for taxonomy %s: %w", taxonomy, err)
	}
	return count, nil
}

// appliesTo reports whether a comma-separated registration list names the
// content type.
func appliesTo(registered, contentType string) bool {
	for _, ct := range strings.Split(registered, ",") {
		if strings.TrimSpace(ct) == contentType {
			return true
		}
	}
	return false
}
