package content

import (
	"database/sql"
	"fmt"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
)

type TemplateRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewTemplateRepository(db *sql.DB, logger *logging.ChanneledLogger) *TemplateRepository {
	return &TemplateRepository{
		db:     db,
		logger: logger,
	}
}

// Catalog returns the template id → label mapping of the active theme,
// always including the implicit "default" entry. A theme row with the
// "default" id overrides the synthesized label.
func (r *TemplateRepository) Catalog() (map[string]string, error) {
	catalog := map[string]string{
		content.DefaultTemplateID: content.DefaultTemplateLabel,
	}

	rows, err := r.db.Query(`SELECT template_id, label FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query template registry: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		catalog[id] = label
	}
	return catalog, rows.Err()
}

// CountByTemplate groups all page items by their effective template id,
// treating a missing assignment as "default". Stale ids still present in
// the data are returned as-is; dropping ids absent from the catalog is the
// aggregation layer's concern.
func (r *TemplateRepository) CountByTemplate() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(pm.meta_value, ?) AS template_id, COUNT(*) AS count
		FROM content_items p
		LEFT JOIN item_meta pm ON p.id = pm.item_id AND pm.meta_key = ?
		WHERE p.content_type = 'page'
		GROUP BY COALESCE(pm.meta_value, ?)`,
		content.DefaultTemplateID, content.TemplateMetaKey, content.DefaultTemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count template usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan template count row: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
