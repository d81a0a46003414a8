package services

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExportService(t *testing.T) *ExportService {
	return &ExportService{
		logger:      quietLogger(),
		perfTracker: testTracker(),
		exportDir:   t.TempDir(),
	}
}

func pageReport() *content.InventoryReport {
	dimensions := []*content.TaxonomyDimension{{Name: "category", Label: "Categories"}}
	return &content.InventoryReport{
		Selection: content.FilterSelection{
			ContentType: "page",
			Taxonomy:    content.All,
			Status:      content.All,
			Template:    content.All,
		},
		Headers:    BuildHeaders("page", dimensions),
		Dimensions: dimensions,
		Rows: []*content.InventoryRow{
			{
				ID:            1,
				Title:         "About\nUs",
				Slug:          "about-us",
				Status:        "publish",
				URL:           "https://example.com/about-us",
				TemplateLabel: content.DefaultTemplateLabel,
				TermsByDimension: map[string]string{
					"Categories": "News, Guides",
				},
			},
			{
				ID:               2,
				Title:            "Contact",
				Slug:             "contact",
				Status:           "draft",
				URL:              "https://example.com/contact",
				TemplateLabel:    "Landing",
				TermsByDimension: map[string]string{},
			},
		},
		TotalItems: 2,
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	svc := newTestExportService(t)
	report := pageReport()

	file, err := svc.WriteCSV(report)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Cleanup(file) })

	f, err := os.Open(file.Path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, report.Headers, records[0])
	assert.Equal(t, []string{
		"https://example.com/about-us", "1", "AboutUs", "about-us", "publish",
		content.DefaultTemplateLabel, "News, Guides",
	}, records[1])
	assert.Equal(t, []string{
		"https://example.com/contact", "2", "Contact", "contact", "draft",
		"Landing", "",
	}, records[2])
}

func TestWriteCSVFilename(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.WriteCSV(pageReport())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Cleanup(file) })

	date := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, "page_inventory_"+date+".csv", file.Filename)
	assert.True(t, strings.HasSuffix(file.Path, ".csv"))
}

func TestCleanupRemovesFileAndToleratesMissing(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.WriteCSV(pageReport())
	require.NoError(t, err)

	svc.Cleanup(file)
	_, err = os.Stat(file.Path)
	assert.True(t, os.IsNotExist(err))

	// Already removed; must not panic or error loudly.
	svc.Cleanup(file)
	svc.Cleanup(nil)
}

func TestCSVRecordOmitsTemplateForNonPages(t *testing.T) {
	dimensions := []*content.TaxonomyDimension{{Name: "category", Label: "Categories"}}
	row := &content.InventoryRow{
		ID:     9,
		Title:  "Hello",
		Slug:   "hello",
		Status: "publish",
		URL:    "https://example.com/post/hello",
		TermsByDimension: map[string]string{
			"Categories": "News",
		},
	}

	record := csvRecord(row, "post", dimensions)
	assert.Equal(t, []string{
		"https://example.com/post/hello", "9", "Hello", "hello", "publish", "News",
	}, record)
}
