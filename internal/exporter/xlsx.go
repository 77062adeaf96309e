package exporter

import (
	"strings"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/xuri/excelize/v2"
)

const projectsSheet = "Projects"

var xlsxHeader = []interface{}{
	"title", "summary", "url", "repo", "tags", "year", "featured", "created_at",
}

// ExportXLSX writes the catalog's projects to a spreadsheet at path,
// one row per project in gallery order.
func ExportXLSX(catalog *model.Catalog, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", projectsSheet); err != nil {
		return err
	}

	// StreamWriter for efficiency on large tables
	sw, err := f.NewStreamWriter(projectsSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", xlsxHeader); err != nil {
		return err
	}

	for i, p := range catalog.Ordered() {
		var year interface{}
		if p.Year > 0 {
			year = p.Year
		}
		row := []interface{}{
			p.Title, p.Summary, p.URL, p.Repo, strings.Join(p.Tags, ", "),
			year, p.Featured, p.CreatedAt.Format("2006-01-02"),
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cellAddr, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
