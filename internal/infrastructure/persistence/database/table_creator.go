// Package database provides content-store schema bootstrap
package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the content-store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the content-store
// tables and indexes. All statements are idempotent.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedRegistries adds the baseline content-type and taxonomy registrations a
// fresh store needs before the inventory can report on it.
func (tc *TableCreator) SeedRegistries(db *sql.DB) error {
	contentTypes := []struct {
		name, label string
		public      bool
	}{
		{"page", "Pages", true},
		{"post", "Posts", true},
		{"attachment", "Media", true},
	}

	for _, ct := range contentTypes {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM content_types WHERE name = ?)", ct.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check content type %s: %w", ct.name, err)
		}
		if !exists {
			_, err = db.Exec(`INSERT INTO content_types (name, label, public) VALUES (?, ?, ?)`, ct.name, ct.label, ct.public)
			if err != nil {
				return fmt.Errorf("failed to insert content type %s: %w", ct.name, err)
			}
		}
	}

	taxonomies := []struct {
		name, label, contentTypes string
		position                  int
	}{
		{"category", "Categories", "post", 0},
		{"post_tag", "Tags", "post", 1},
		{"post_format", "Formats", "post", 2},
	}

	for _, tax := range taxonomies {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM taxonomies WHERE name = ?)", tax.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check taxonomy %s: %w", tax.name, err)
		}
		if !exists {
			_, err = db.Exec(`INSERT INTO taxonomies (name, label, content_types, position) VALUES (?, ?, ?, ?)`,
				tax.name, tax.label, tax.contentTypes, tax.position)
			if err != nil {
				return fmt.Errorf("failed to insert taxonomy %s: %w", tax.name, err)
			}
		}
	}

	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS content_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		content_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'publish',
		parent_id INTEGER NOT NULL DEFAULT 0,
		mime_type TEXT NOT NULL DEFAULT '',
		file_path TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS item_meta (
		item_id INTEGER NOT NULL,
		meta_key TEXT NOT NULL,
		meta_value TEXT NOT NULL,
		PRIMARY KEY (item_id, meta_key)
	)`,
	`CREATE TABLE IF NOT EXISTS content_types (
		name TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		public INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS taxonomies (
		name TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		content_types TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS terms (
		term_id INTEGER PRIMARY KEY AUTOINCREMENT,
		taxonomy TEXT NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS term_relationships (
		item_id INTEGER NOT NULL,
		term_id INTEGER NOT NULL,
		PRIMARY KEY (item_id, term_id)
	)`,
	`CREATE TABLE IF NOT EXISTS templates (
		template_id TEXT PRIMARY KEY,
		label TEXT NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_content_items_type ON content_items(content_type)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_status ON content_items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_item_meta_key ON item_meta(meta_key)`,
	`CREATE INDEX IF NOT EXISTS idx_terms_taxonomy ON terms(taxonomy)`,
	`CREATE INDEX IF NOT EXISTS idx_term_relationships_term ON term_relationships(term_id)`,
}
