package services

import (
	"testing"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramGetter(params map[string]string) func(string) string {
	return func(name string) string { return params[name] }
}

func TestParseSelectionDefaults(t *testing.T) {
	selection := ParseSelection(paramGetter(nil))

	assert.Equal(t, "page", selection.ContentType)
	assert.Equal(t, content.All, selection.Taxonomy)
	assert.Equal(t, content.All, selection.Status)
	assert.Equal(t, content.All, selection.Template)
	assert.Zero(t, selection.TermID)
	assert.False(t, selection.HasTermFilter())
}

func TestParseSelectionNeutralizesTermWithoutTaxonomy(t *testing.T) {
	selection := ParseSelection(paramGetter(map[string]string{
		"post_type": "post",
		"term":      "42",
	}))

	assert.Zero(t, selection.TermID)
	assert.False(t, selection.HasTermFilter())
}

func TestParseSelectionKeepsTermWithTaxonomy(t *testing.T) {
	selection := ParseSelection(paramGetter(map[string]string{
		"post_type": "post",
		"taxonomy":  "category",
		"term":      "42",
	}))

	assert.Equal(t, int64(42), selection.TermID)
	assert.True(t, selection.HasTermFilter())
}

func TestParseSelectionNeutralizesTemplateOnNonPages(t *testing.T) {
	selection := ParseSelection(paramGetter(map[string]string{
		"post_type": "post",
		"template":  "templates/landing.php",
	}))

	assert.Equal(t, content.All, selection.Template)
}

func TestParseSelectionStripsControlCharacters(t *testing.T) {
	selection := ParseSelection(paramGetter(map[string]string{
		"post_type": "  pa\x00ge\n",
		"status":    "dra\x1bft",
		"term":      "abc",
	}))

	assert.Equal(t, "page", selection.ContentType)
	assert.Equal(t, "draft", selection.Status)
	assert.Zero(t, selection.TermID)
}

func TestBuildHeaders(t *testing.T) {
	dimensions := []*content.TaxonomyDimension{
		{Name: "category", Label: "Categories"},
		{Name: "region", Label: "Regions"},
	}

	assert.Equal(t,
		[]string{"URL", "ID", "Title", "Post Name", "Status", "Template", "Categories", "Regions"},
		BuildHeaders("page", dimensions))

	assert.Equal(t,
		[]string{"URL", "ID", "Title", "Post Name", "Status", "Categories", "Regions"},
		BuildHeaders("post", dimensions))
}

func newTestInventoryService(items *fakeItemRepo, taxonomies *fakeTaxonomyRepo, templates *fakeTemplateRepo) *InventoryService {
	return &InventoryService{
		items:       items,
		taxonomies:  taxonomies,
		templates:   templates,
		logger:      quietLogger(),
		perfTracker: testTracker(),
		baseURL:     "https://example.com",
	}
}

func TestBuildReportShapesPageRows(t *testing.T) {
	items := &fakeItemRepo{
		items: []*content.ContentItem{
			{ID: 1, Title: "About", Slug: "about", ContentType: "page", Status: "publish"},
			{ID: 2, Title: "Team", Slug: "team", ContentType: "page", Status: "publish", ParentID: 1},
			{ID: 3, Title: "Drafted", Slug: "drafted", ContentType: "page", Status: "draft"},
		},
		statuses: []string{"draft", "publish"},
		meta: map[int64]map[string]string{
			2: {content.TemplateMetaKey: "templates/landing.php"},
			3: {content.TemplateMetaKey: "templates/deleted.php"},
		},
		ancestorSlugs: map[int64][]string{
			1: {"about"},
			2: {"about", "team"},
			3: {"drafted"},
		},
		termsByItem: map[int64]map[string][]*content.Term{
			1: {"category": {
				{ID: 10, Taxonomy: "category", Name: "News"},
				{ID: 11, Taxonomy: "category", Name: "Guides"},
			}},
		},
	}
	taxonomies := &fakeTaxonomyRepo{
		dimensions: []*content.TaxonomyDimension{{Name: "category", Label: "Categories"}},
	}
	templates := &fakeTemplateRepo{
		catalog: map[string]string{
			content.DefaultTemplateID: content.DefaultTemplateLabel,
			"templates/landing.php":   "Landing",
		},
	}

	svc := newTestInventoryService(items, taxonomies, templates)
	report, err := svc.BuildReport(content.FilterSelection{
		ContentType: "page",
		Taxonomy:    content.All,
		Status:      content.All,
		Template:    content.All,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"URL", "ID", "Title", "Post Name", "Status", "Template", "Categories"}, report.Headers)
	assert.Equal(t, []string{content.All, "draft", "publish"}, report.Statuses)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, 3, report.TotalItems)

	about := report.Rows[0]
	assert.Equal(t, "https://example.com/about", about.URL)
	assert.Equal(t, content.DefaultTemplateLabel, about.TemplateLabel)
	assert.Equal(t, map[string]string{"Categories": "News, Guides"}, about.TermsByDimension)

	team := report.Rows[1]
	assert.Equal(t, "https://example.com/about/team", team.URL)
	assert.Equal(t, "Landing", team.TemplateLabel)
	assert.Empty(t, team.TermsByDimension)

	// A template id no longer in the registry still yields a row.
	drafted := report.Rows[2]
	assert.Equal(t, content.UnknownTemplateLabel, drafted.TemplateLabel)
}

func TestBuildReportUsesGenericPermalinksForNonPages(t *testing.T) {
	items := &fakeItemRepo{
		items: []*content.ContentItem{
			{ID: 7, Title: "Hello", Slug: "hello-world", ContentType: "post", Status: "publish"},
		},
		statuses: []string{"publish"},
	}

	svc := newTestInventoryService(items, &fakeTaxonomyRepo{}, &fakeTemplateRepo{})
	report, err := svc.BuildReport(content.FilterSelection{
		ContentType: "post",
		Taxonomy:    content.All,
		Status:      content.All,
		Template:    content.All,
	})
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "https://example.com/post/hello-world", report.Rows[0].URL)
	assert.Empty(t, report.Rows[0].TemplateLabel)
	assert.Equal(t, []string{"URL", "ID", "Title", "Post Name", "Status"}, report.Headers)
}

func TestFilterDiscovery(t *testing.T) {
	items := &fakeItemRepo{
		statuses: []string{"publish"},
		contentTypes: []*content.ContentType{
			{Name: "page", Label: "Pages", Public: true},
			{Name: "post", Label: "Posts", Public: true},
		},
	}
	taxonomies := &fakeTaxonomyRepo{
		dimensions: []*content.TaxonomyDimension{{Name: "category", Label: "Categories"}},
		termsByDim: map[string][]*content.Term{
			"category": {{ID: 1, Taxonomy: "category", Name: "News"}},
		},
	}
	templates := &fakeTemplateRepo{
		catalog: map[string]string{content.DefaultTemplateID: content.DefaultTemplateLabel},
	}

	svc := newTestInventoryService(items, taxonomies, templates)

	options, err := svc.FilterDiscovery(content.FilterSelection{ContentType: "page", Taxonomy: content.All})
	require.NoError(t, err)
	assert.Len(t, options.ContentTypes, 2)
	assert.Equal(t, []string{content.All, "publish"}, options.Statuses)
	assert.Nil(t, options.Terms)
	assert.Contains(t, options.Templates, content.DefaultTemplateID)

	options, err = svc.FilterDiscovery(content.FilterSelection{ContentType: "post", Taxonomy: "category"})
	require.NoError(t, err)
	require.Len(t, options.Terms, 1)
	assert.Equal(t, "News", options.Terms[0].Name)
	assert.Nil(t, options.Templates)
}
