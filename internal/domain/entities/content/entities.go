// Package content defines the domain entities for the content inventory.
package content

// All is the sentinel filter value meaning "no filter on this dimension".
const All = "All"

// DefaultTemplateID is the implicit template identifier for page items
// that carry no explicit template assignment.
const DefaultTemplateID = "default"

// DefaultTemplateLabel is the human label synthesized for the implicit
// template when the active theme does not supply one.
const DefaultTemplateLabel = "Default template"

// UnknownTemplateLabel is surfaced for items whose assigned template id
// is no longer present in the template registry.
const UnknownTemplateLabel = "Unknown Template"

// TemplateMetaKey is the item metadata key holding a page's template id.
const TemplateMetaKey = "page_template"

// ContentItem is a single row of the content store. Items are owned by the
// store; the inventory only ever reads them.
type ContentItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	ContentType string `json:"contentType"`
	Status      string `json:"status"`
	ParentID    int64  `json:"parentId,omitempty"`
}

// ContentType describes a registered content type.
type ContentType struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Public bool   `json:"public"`
}

// TaxonomyDimension is a named classification axis scoped to a set of
// content types.
type TaxonomyDimension struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Term belongs to exactly one taxonomy dimension.
type Term struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name"`
}

// FilterSelection is the transient input to every inventory query. A zero
// TermID means the "All" sentinel; the term filter is only meaningful when
// a taxonomy dimension is also selected, and the template filter only when
// the content type is "page".
type FilterSelection struct {
	ContentType string `json:"contentType"`
	Taxonomy    string `json:"taxonomy"`
	TermID      int64  `json:"termId,omitempty"`
	Status      string `json:"status"`
	Template    string `json:"template"`
}

// HasTermFilter reports whether a specific term narrows the selection.
// A term without a selected taxonomy dimension never filters.
func (s FilterSelection) HasTermFilter() bool {
	return s.Taxonomy != All && s.TermID > 0
}

// InventoryRow is the shaped per-item record consumed identically by the
// table view and the CSV exporter. TermsByDimension is sparse: only
// dimensions with at least one assigned term appear as keys.
type InventoryRow struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	Status           string            `json:"status"`
	URL              string            `json:"url"`
	TemplateLabel    string            `json:"templateLabel,omitempty"`
	TermsByDimension map[string]string `json:"termsByDimension"`
}

// InventoryReport is the full result of one filter selection: the rows,
// the active headers, and the filter context they were produced under.
// The same report backs both the on-screen table and the CSV export.
type InventoryReport struct {
	Selection  FilterSelection      `json:"selection"`
	Headers    []string             `json:"headers"`
	Dimensions []*TaxonomyDimension `json:"dimensions"`
	Statuses   []string             `json:"statuses"`
	Rows       []*InventoryRow      `json:"rows"`
	TotalItems int                  `json:"totalItems"`
}

// Category partitions content types by which aggregation applies to them.
type Category int

const (
	// CategoryTemplated content types carry display templates (pages).
	CategoryTemplated Category = iota
	// CategoryTaxonomic content types are classified by taxonomy dimensions.
	CategoryTaxonomic
	// CategoryMedia content types are stored binary attachments.
	CategoryMedia
)

// CategoryOf maps a content type to its aggregation category.
func CategoryOf(contentType string) Category {
	switch contentType {
	case "page":
		return CategoryTemplated
	case "attachment":
		return CategoryMedia
	default:
		return CategoryTaxonomic
	}
}

// TemplateUsage is the per-template item count for templated content.
type TemplateUsage struct {
	TemplateID string `json:"templateId"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
}

// TaxonomyUsage summarizes one dimension: the distinct count of items with
// at least one term assigned in it, and the names of its non-empty terms.
type TaxonomyUsage struct {
	Dimension     *TaxonomyDimension `json:"dimension"`
	AssignedItems int                `json:"assignedItems"`
	TermNames     []string           `json:"termNames"`
}

// ExtensionCount is the item count for one media file-extension bucket.
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// MediaStats summarizes the attachment library. SampledBytes sums the
// on-disk size of at most the first SampledItems attachments; it is a
// deliberate approximation, not an exact library total.
type MediaStats struct {
	Extensions    []ExtensionCount `json:"extensions"`
	SampledItems  int              `json:"sampledItems"`
	SampledBytes  int64            `json:"sampledBytes"`
	FormattedSize string           `json:"formattedSize"`
}

// AggregateStats carries whichever aggregation applies to the selected
// content type; the other fields stay nil.
type AggregateStats struct {
	Templates  []TemplateUsage  `json:"templates,omitempty"`
	Taxonomies []*TaxonomyUsage `json:"taxonomies,omitempty"`
	Media      *MediaStats      `json:"media,omitempty"`
}
