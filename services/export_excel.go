package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"costestimator/estimate"
)

const (
	excelSheetName = "Estimate"
	excelLastCol   = 29

	// Logo box in pixels; the image is scaled to fit inside it.
	logoMaxWidth  = 150
	logoMaxHeight = 100
)

// excelColumn describes one column of the estimate table.
type excelColumn struct {
	Header string
	Width  float64
}

var excelColumns = []excelColumn{
	{"Item No", 5},
	{"Tag/ Spec", 10},
	{"Description", 28},
	{"Location", 15},
	{"Product Info", 28},
	{"Manufacturer", 15},
	{"UoM", 5},
	{"Material Qty", 14},
	{"Waste %", 8},
	{"Waste Qty", 14},
	{"Attic %", 8},
	{"Attic Qty", 14},
	{"Total Qty", 17},
	{"Material", 10},
	{"Adhesive", 10},
	{"Freight", 10},
	{"Receiving", 10},
	{"Delivery", 10},
	{"Labor", 10},
	{"Total AddOn", 10},
	{"Total Material Cost", 17},
	{"Tax %", 8},
	{"Tax", 12},
	{"URBAN Total + Tax", 17},
	{"Mark up Material %", 8},
	{"Material Markup", 17},
	{"Mark up Add On %", 8},
	{"AddOn Markup", 17},
	{"Total Cost to Client", 17},
}

// excelStyles holds the style IDs registered on a workbook.
type excelStyles struct {
	title, info                 int
	header                      int
	category, subcategory       int
	text, number                int
	currency, percent           int
	totalsLabel, totalsCurrency int
}

// GenerateExcel renders the estimate as a single-sheet workbook and returns
// the file contents.
func GenerateExcel(data EstimateData, cfg ExportConfig) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), excelSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	for i, c := range excelColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(excelSheetName, name, name, c.Width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	styles, err := newExcelStyles(f, cfg.Palette())
	if err != nil {
		return nil, err
	}

	if len(data.Project.Logo) > 0 {
		if err := addExcelLogo(f, data.Project.Logo, data.Project.LogoExt); err != nil {
			// The text header still renders.
			log.Printf("excel: logo: %v", err)
		}
	}

	// ── Project header (rows 1-6, columns D..P) ─────────────────────────

	p := data.Project
	headerLines := []string{
		p.CompanyName,
		"Project: " + p.ProjectName,
		"Address: " + p.ProjectAddress,
		"Architect: " + p.ArchitectInfo,
		"Date: " + p.ProjectDate,
		"Revision: " + p.Revision,
	}
	for i, line := range headerLines {
		row := i + 1
		start, _ := excelize.CoordinatesToCellName(4, row)
		end, _ := excelize.CoordinatesToCellName(16, row)
		if err := f.MergeCell(excelSheetName, start, end); err != nil {
			return nil, fmt.Errorf("merge header row %d: %w", row, err)
		}
		f.SetCellValue(excelSheetName, start, sanitizeExcelCell(line))
		style := styles.info
		if i == 0 {
			style = styles.title
		}
		f.SetCellStyle(excelSheetName, start, end, style)
	}

	// ── Column headers (row 9) ──────────────────────────────────────────

	row := len(headerLines) + 3
	for i, c := range excelColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(excelSheetName, cell, c.Header)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(excelLastCol, row)
	f.SetCellStyle(excelSheetName, first, last, styles.header)
	row++

	// ── Sections ────────────────────────────────────────────────────────

	for _, cat := range data.Categories {
		if err := writeExcelSectionRow(f, row, cat.Name, styles.category); err != nil {
			return nil, err
		}
		row++

		for _, item := range cat.Items {
			writeExcelItemRow(f, row, item, styles)
			row++
		}

		for _, sub := range cat.Subcategories {
			if err := writeExcelSectionRow(f, row, sub.Name, styles.subcategory); err != nil {
				return nil, err
			}
			row++
			for _, item := range sub.Items {
				writeExcelItemRow(f, row, item, styles)
				row++
			}
		}
	}

	// ── Grand totals ────────────────────────────────────────────────────

	labelStart, _ := excelize.CoordinatesToCellName(1, row)
	labelEnd, _ := excelize.CoordinatesToCellName(20, row)
	if err := f.MergeCell(excelSheetName, labelStart, labelEnd); err != nil {
		return nil, fmt.Errorf("merge totals label: %w", err)
	}
	f.SetCellValue(excelSheetName, labelStart, "GRAND TOTALS:")
	f.SetCellStyle(excelSheetName, labelStart, labelEnd, styles.totalsLabel)

	t := data.Totals
	totals := map[int]decimal.Decimal{
		21: t.TotalMaterialCost,
		23: t.TaxAmount,
		24: t.TotalPlusTax,
		26: t.MarkupMaterial,
		28: t.MarkupAddon,
		29: t.TotalClientCost,
	}
	for col := 21; col <= excelLastCol; col++ {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		if v, ok := totals[col]; ok {
			setExcelDecimal(f, cell, v)
		}
		f.SetCellStyle(excelSheetName, cell, cell, styles.totalsCurrency)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// writeExcelSectionRow writes a category or subcategory name merged across
// the full table width.
func writeExcelSectionRow(f *excelize.File, row int, name string, style int) error {
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(excelLastCol, row)
	if err := f.MergeCell(excelSheetName, start, end); err != nil {
		return fmt.Errorf("merge section %q: %w", name, err)
	}
	f.SetCellValue(excelSheetName, start, sanitizeExcelCell(name))
	f.SetCellStyle(excelSheetName, start, end, style)
	return nil
}

// writeExcelItemRow writes one calculated item. Percent columns carry the
// percent value itself, formatted with a literal % sign.
func writeExcelItemRow(f *excelize.File, row int, item estimate.ItemResult, s excelStyles) {
	texts := []string{item.TagSpec, item.Description, item.Location, item.ProductInfo, item.Manufacturer, item.UnitOfMeasure}

	cell := func(col int) string {
		c, _ := excelize.CoordinatesToCellName(col, row)
		return c
	}

	f.SetCellInt(excelSheetName, cell(1), int64(item.ItemNo))
	f.SetCellStyle(excelSheetName, cell(1), cell(1), s.number)

	for i, v := range texts {
		c := cell(i + 2)
		f.SetCellValue(excelSheetName, c, sanitizeExcelCell(v))
		style := s.text
		if i == len(texts)-1 {
			style = s.number
		}
		f.SetCellStyle(excelSheetName, c, c, style)
	}

	numbers := []struct {
		value decimal.Decimal
		style int
	}{
		{item.MaterialQty, s.number},
		{item.WasteFactorPercent, s.percent},
		{item.WasteQty, s.number},
		{item.AtticStockPercent, s.percent},
		{item.AtticQty, s.number},
		{item.TotalQty, s.number},
		{item.UnitCostMaterial, s.currency},
		{item.UnitCostAdhesive, s.currency},
		{item.UnitCostFreight, s.currency},
		{item.UnitCostReceiving, s.currency},
		{item.UnitCostDelivery, s.currency},
		{item.UnitCostLabor, s.currency},
		{item.TotalAddon, s.currency},
		{item.TotalMaterialCost, s.currency},
		{item.TaxPercent, s.percent},
		{item.TaxAmount, s.currency},
		{item.UrbanTotalPlusTax, s.currency},
		{item.MarkupMaterialPercent, s.percent},
		{item.MarkupMaterial, s.currency},
		{item.MarkupAddonsPercent, s.percent},
		{item.MarkupAddon, s.currency},
		{item.TotalClientCost, s.currency},
	}
	for i, n := range numbers {
		c := cell(i + 8)
		setExcelDecimal(f, c, n.value)
		f.SetCellStyle(excelSheetName, c, c, n.style)
	}
}

func setExcelDecimal(f *excelize.File, cell string, d decimal.Decimal) {
	f.SetCellFloat(excelSheetName, cell, estimate.Round2(d).InexactFloat64(), 2, 64)
}

// addExcelLogo places the logo at A1, scaled to fit the logo box.
func addExcelLogo(f *excelize.File, logo []byte, ext string) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("decode logo: empty image")
	}

	scale := math.Min(float64(logoMaxWidth)/float64(cfg.Width), float64(logoMaxHeight)/float64(cfg.Height))

	return f.AddPictureFromBytes(excelSheetName, "A1", &excelize.Picture{
		Extension: "." + ext,
		File:      logo,
		Format: &excelize.GraphicOptions{
			ScaleX:  scale,
			ScaleY:  scale,
			OffsetX: 10,
			OffsetY: 7,
		},
	})
}

func newExcelStyles(f *excelize.File, palette map[string]string) (excelStyles, error) {
	var s excelStyles
	currencyFmt := `$#,##0.00`
	percentFmt := `0.00"%"`

	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.info, "info", &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: palette[ColorHeaderText]},
			Fill:      solidFill(palette[ColorHeaderBg]),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    thinBorders(),
		}},
		{&s.category, "category", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Color: palette[ColorCategoryText]},
			Fill:   solidFill(palette[ColorCategoryBg]),
			Border: thinBorders(),
		}},
		{&s.subcategory, "subcategory", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: palette[ColorSubcategoryText]},
			Fill:      solidFill(palette[ColorSubcategoryBg]),
			Alignment: &excelize.Alignment{Indent: 1},
			Border:    thinBorders(),
		}},
		{&s.text, "text", &excelize.Style{
			Font:      &excelize.Font{Color: palette[ColorItemText]},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
			Border:    thinBorders(),
		}},
		{&s.number, "number", &excelize.Style{
			Font:      &excelize.Font{Color: palette[ColorItemText]},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
			Border:    thinBorders(),
		}},
		{&s.currency, "currency", &excelize.Style{
			Font:         &excelize.Font{Color: palette[ColorItemText]},
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "top"},
			Border:       thinBorders(),
			CustomNumFmt: &currencyFmt,
		}},
		{&s.percent, "percent", &excelize.Style{
			Font:         &excelize.Font{Color: palette[ColorItemText]},
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "top"},
			Border:       thinBorders(),
			CustomNumFmt: &percentFmt,
		}},
		{&s.totalsLabel, "totals label", &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      solidFill(palette[ColorHeaderBg]),
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border:    thinBorders(),
		}},
		{&s.totalsCurrency, "totals value", &excelize.Style{
			Font:         &excelize.Font{Bold: true},
			Fill:         solidFill(palette[ColorHeaderBg]),
			Alignment:    &excelize.Alignment{Horizontal: "center"},
			Border:       thinBorders(),
			CustomNumFmt: &currencyFmt,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
