package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"costestimator/estimate"
	"costestimator/services"
)

// EstimatePageData is everything the estimate page renders.
type EstimatePageData struct {
	Estimate services.EstimateData
	LogoURL  string
	// Colors is a resolved palette, see services.ExportConfig.Palette.
	Colors map[string]string
}

type column struct {
	header string
	value  func(estimate.ItemResult) string
}

var estimateColumns = []column{
	{"Item No", func(r estimate.ItemResult) string { return strconv.Itoa(r.ItemNo) }},
	{"Tag/ Spec", func(r estimate.ItemResult) string { return r.TagSpec }},
	{"Description", func(r estimate.ItemResult) string { return r.Description }},
	{"Location", func(r estimate.ItemResult) string { return r.Location }},
	{"Product Info", func(r estimate.ItemResult) string { return r.ProductInfo }},
	{"Manufacturer", func(r estimate.ItemResult) string { return r.Manufacturer }},
	{"UoM", func(r estimate.ItemResult) string { return r.UnitOfMeasure }},
	{"Material Qty", func(r estimate.ItemResult) string { return services.FormatQty(r.MaterialQty) }},
	{"Waste %", func(r estimate.ItemResult) string { return services.FormatPercent(r.WasteFactorPercent) }},
	{"Waste Qty", func(r estimate.ItemResult) string { return services.FormatQty(r.WasteQty) }},
	{"Attic %", func(r estimate.ItemResult) string { return services.FormatPercent(r.AtticStockPercent) }},
	{"Attic Qty", func(r estimate.ItemResult) string { return services.FormatQty(r.AtticQty) }},
	{"Total Qty", func(r estimate.ItemResult) string { return services.FormatQty(r.TotalQty) }},
	{"Material", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostMaterial) }},
	{"Adhesive", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostAdhesive) }},
	{"Freight", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostFreight) }},
	{"Receiving", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostReceiving) }},
	{"Delivery", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostDelivery) }},
	{"Labor", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UnitCostLabor) }},
	{"Total AddOn", func(r estimate.ItemResult) string { return services.FormatCurrency(r.TotalAddon) }},
	{"Total Material Cost", func(r estimate.ItemResult) string { return services.FormatCurrency(r.TotalMaterialCost) }},
	{"Tax %", func(r estimate.ItemResult) string { return services.FormatPercent(r.TaxPercent) }},
	{"Tax", func(r estimate.ItemResult) string { return services.FormatCurrency(r.TaxAmount) }},
	{"URBAN Total + Tax", func(r estimate.ItemResult) string { return services.FormatCurrency(r.UrbanTotalPlusTax) }},
	{"Mark up Material %", func(r estimate.ItemResult) string { return services.FormatPercent(r.MarkupMaterialPercent) }},
	{"Material Markup", func(r estimate.ItemResult) string { return services.FormatCurrency(r.MarkupMaterial) }},
	{"Mark up Add On %", func(r estimate.ItemResult) string { return services.FormatPercent(r.MarkupAddonsPercent) }},
	{"AddOn Markup", func(r estimate.ItemResult) string { return services.FormatCurrency(r.MarkupAddon) }},
	{"Total Cost to Client", func(r estimate.ItemResult) string { return services.FormatCurrency(r.TotalClientCost) }},
}

// firstNumericColumn is the index of the first right-aligned column.
const firstNumericColumn = 7

// totalsLabelSpan is the number of columns the GRAND TOTALS label covers.
const totalsLabelSpan = 20

func columnSpan() string {
	return strconv.Itoa(len(estimateColumns))
}

func headerLines(proj services.ProjectInfo) []string {
	return []string{
		"Project: " + proj.ProjectName,
		"Address: " + proj.ProjectAddress,
		"Architect: " + proj.ArchitectInfo,
		"Date: " + proj.ProjectDate,
		"Revision: " + proj.Revision,
	}
}

// totalsCells returns the cells after the GRAND TOTALS label, blank where a
// column has no grand total.
func totalsCells(t estimate.GrandTotals) []string {
	cells := make([]string, len(estimateColumns)-totalsLabelSpan)
	cells[20-totalsLabelSpan] = services.FormatCurrency(t.TotalMaterialCost)
	cells[22-totalsLabelSpan] = services.FormatCurrency(t.TaxAmount)
	cells[23-totalsLabelSpan] = services.FormatCurrency(t.TotalPlusTax)
	cells[25-totalsLabelSpan] = services.FormatCurrency(t.MarkupMaterial)
	cells[27-totalsLabelSpan] = services.FormatCurrency(t.MarkupAddon)
	cells[28-totalsLabelSpan] = services.FormatCurrency(t.TotalClientCost)
	return cells
}

// paletteStyle renders the colour rules of the page. Values pass through
// attr, so a palette entry cannot close the style element.
func paletteStyle(c map[string]string) templ.Component {
	var b strings.Builder
	b.WriteString("<style>")
	fmt.Fprintf(&b, "th{background:%s;color:%s}", attr(c, services.ColorHeaderBg), attr(c, services.ColorHeaderText))
	fmt.Fprintf(&b, "td{color:%s}", attr(c, services.ColorItemText))
	fmt.Fprintf(&b, "tr.category td{background:%s;color:%s;font-weight:bold}", attr(c, services.ColorCategoryBg), attr(c, services.ColorCategoryText))
	fmt.Fprintf(&b, "tr.subcategory td{background:%s;color:%s;font-weight:bold;padding-left:1.5em}", attr(c, services.ColorSubcategoryBg), attr(c, services.ColorSubcategoryText))
	fmt.Fprintf(&b, "tr.totals td{background:%s;font-weight:bold}", attr(c, services.ColorHeaderBg))
	b.WriteString("</style>")
	return templ.Raw(b.String())
}

// attr returns a palette colour safe to place in a style block.
func attr(colors map[string]string, key string) string {
	v, ok := colors[key]
	if !ok {
		v = services.DefaultColors[key]
	}
	return templ.EscapeString(v)
}
