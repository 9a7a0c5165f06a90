package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"costestimator/estimate"
)

// pdfGridSize is the number of grid units per row.
const pdfGridSize = 24

// pdfColumn is one column of the reduced PDF table.
type pdfColumn struct {
	Header string
	Size   int
	Align  align.Type
	Value  func(estimate.ItemResult) string
}

var pdfColumns = []pdfColumn{
	{"#", 1, align.Center, func(r estimate.ItemResult) string { return strconv.Itoa(r.ItemNo) }},
	{"Tag/Spec", 2, align.Left, func(r estimate.ItemResult) string { return r.TagSpec }},
	{"Description", 4, align.Left, func(r estimate.ItemResult) string { return r.Description }},
	{"Location", 2, align.Left, func(r estimate.ItemResult) string { return r.Location }},
	{"UoM", 1, align.Center, func(r estimate.ItemResult) string { return r.UnitOfMeasure }},
	{"Total Qty", 2, align.Right, func(r estimate.ItemResult) string { return FormatQty(r.TotalQty) }},
	{"Material", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.UnitCostMaterial) }},
	{"Total AddOn", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.TotalAddon) }},
	{"Material Cost", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.TotalMaterialCost) }},
	{"Tax", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.TaxAmount) }},
	{"Total + Tax", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.UrbanTotalPlusTax) }},
	{"Client Cost", 2, align.Right, func(r estimate.ItemResult) string { return FormatCurrency(r.TotalClientCost) }},
}

// GeneratePDF renders the estimate as a landscape A4 document using
// maroto/v2 and returns the raw PDF bytes.
func GeneratePDF(data EstimateData, cfg ExportConfig) ([]byte, error) {
	palette := cfg.Palette()

	mcfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(pdfGridSize).
		WithLeftMargin(5).
		WithTopMargin(5).
		WithRightMargin(5).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(mcfg)

	addPDFHeader(m, data.Project)
	addPDFTableHeader(m, palette)

	for _, cat := range data.Categories {
		addPDFSectionRow(m, cat.Name, palette[ColorCategoryBg], palette[ColorCategoryText], "")
		for _, item := range cat.Items {
			addPDFItemRow(m, item, palette)
		}
		for _, sub := range cat.Subcategories {
			addPDFSectionRow(m, sub.Name, palette[ColorSubcategoryBg], palette[ColorSubcategoryText], "  ")
			for _, item := range sub.Items {
				addPDFItemRow(m, item, palette)
			}
		}
	}

	addPDFTotals(m, data.Totals, palette)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPDFHeader adds the logo (if any) and the project information block.
func addPDFHeader(m core.Maroto, p ProjectInfo) {
	infoText := props.Text{Size: 9, Align: align.Center}
	lines := []string{
		"Project: " + p.ProjectName,
		"Address: " + p.ProjectAddress,
		"Architect: " + p.ArchitectInfo,
		fmt.Sprintf("Date: %s    Revision: %s", p.ProjectDate, p.Revision),
	}

	logoCol := col.New(5)
	if ext, ok := pdfImageExtension(p.LogoExt); ok && len(p.Logo) > 0 {
		logoCol = image.NewFromBytesCol(5, p.Logo, ext, props.Rect{Center: true, Percent: 90})
	}

	info := col.New(14).Add(text.New(p.CompanyName, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	for i, line := range lines {
		t := infoText
		t.Top = float64(7 + i*5)
		info.Add(text.New(line, t))
	}

	m.AddRows(row.New(30).Add(logoCol, info, col.New(5)))
	m.AddRows(row.New(4))
}

func pdfImageExtension(ext string) (extension.Type, bool) {
	switch strings.ToLower(ext) {
	case "png":
		return extension.Png, true
	case "jpg", "jpeg":
		return extension.Jpg, true
	}
	return "", false
}

func addPDFTableHeader(m core.Maroto, palette map[string]string) {
	cell := props.Cell{BackgroundColor: hexToColor(palette[ColorHeaderBg])}
	cols := make([]core.Col, 0, len(pdfColumns))
	for _, c := range pdfColumns {
		cols = append(cols, col.New(c.Size).Add(text.New(c.Header, props.Text{
			Size:  7,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   1,
			Color: hexToColor(palette[ColorHeaderText]),
		})).WithStyle(&cell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

// addPDFSectionRow adds a full-width category or subcategory row.
func addPDFSectionRow(m core.Maroto, name, bg, fg, indent string) {
	cell := props.Cell{BackgroundColor: hexToColor(bg)}
	m.AddRows(row.New(7).Add(
		col.New(pdfGridSize).Add(text.New(indent+name, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
			Top:   1,
			Left:  1,
			Color: hexToColor(fg),
		})).WithStyle(&cell),
	))
}

func addPDFItemRow(m core.Maroto, item estimate.ItemResult, palette map[string]string) {
	fg := hexToColor(palette[ColorItemText])
	cols := make([]core.Col, 0, len(pdfColumns))
	for _, c := range pdfColumns {
		cols = append(cols, col.New(c.Size).Add(text.New(c.Value(item), props.Text{
			Size:  7,
			Align: c.Align,
			Top:   1,
			Color: fg,
		})))
	}
	m.AddRows(row.New(7).Add(cols...))
}

// addPDFTotals adds the grand totals block at the bottom of the document.
func addPDFTotals(m core.Maroto, t estimate.GrandTotals, palette map[string]string) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: hexToColor(palette[ColorHeaderBg])}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 1}

	lines := []struct {
		label string
		value string
	}{
		{"Total Material Cost", FormatCurrency(t.TotalMaterialCost)},
		{"Tax", FormatCurrency(t.TaxAmount)},
		{"Total + Tax", FormatCurrency(t.TotalPlusTax)},
		{"Material Markup", FormatCurrency(t.MarkupMaterial)},
		{"AddOn Markup", FormatCurrency(t.MarkupAddon)},
		{"GRAND TOTAL", FormatCurrency(t.TotalClientCost)},
	}
	for _, l := range lines {
		m.AddRows(row.New(7).Add(
			col.New(16),
			col.New(4).Add(text.New(l.label, label)).WithStyle(cell),
			col.New(4).Add(text.New(l.value, value)).WithStyle(cell),
		))
	}
}

// hexToColor converts #rrggbb to a maroto colour. Malformed input yields black.
func hexToColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return &props.Color{}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return &props.Color{}
	}
	return &props.Color{
		Red:   int(v >> 16 & 0xff),
		Green: int(v >> 8 & 0xff),
		Blue:  int(v & 0xff),
	}
}
