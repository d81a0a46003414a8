package content

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/query"
)

type AttachmentRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewAttachmentRepository(db *sql.DB, logger *logging.ChanneledLogger) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		logger: logger,
	}
}

// ExtensionCounts groups attachment items by the file-extension-like suffix
// of their MIME type (the substring after the last "/"), most frequent
// first. Items with an empty suffix are skipped.
func (r *AttachmentRepository) ExtensionCounts() ([]content.ExtensionCount, error) {
	rows, err := r.db.Query(`
		SELECT mime_type, COUNT(*) AS count
		FROM content_items
		WHERE content_type = 'attachment'
		GROUP BY mime_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count attachment mime types: %w", err)
	}
	defer rows.Close()

	byExtension := make(map[string]int)
	for rows.Next() {
		var mimeType string
		var count int
		if err := rows.Scan(&mimeType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mime type row: %w", err)
		}
		ext := mediaExtension(mimeType)
		if ext == "" {
			continue
		}
		byExtension[ext] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]content.ExtensionCount, 0, len(byExtension))
	for ext, count := range byExtension {
		counts = append(counts, content.ExtensionCount{Extension: ext, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Extension < counts[j].Extension
	})
	return counts, nil
}

// FilePaths returns the stored file paths of the first limit attachment
// items by id. The limit is the documented sampling cap for the byte-size
// aggregate, not pagination.
func (r *AttachmentRepository) FilePaths(limit int) ([]string, error) {
	sqlStr, args := query.Select("content_items", "file_path").
		Where("content_type = ?", "attachment").
		OrderBy("id").
		Limit(limit).
		SQL()

	rows, err := r.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachment file paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan file path row: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// mediaExtension derives the extension-like suffix from a stored MIME type.
func mediaExtension(mimeType string) string {
	if idx := strings.LastIndex(mimeType, "/"); idx >= 0 {
		return mimeType[idx+1:]
	}
	return mimeType
}
