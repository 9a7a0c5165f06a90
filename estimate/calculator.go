// Package estimate computes line-item costs and project grand totals for
// construction estimates. All arithmetic is exact decimal; output fields are
// rounded half away from zero to two places.
package estimate

import "github.com/shopspring/decimal"

// ItemInput is one line item's raw entry. Numeric fields carry at most two
// fractional digits; percentages are whole-number style (10.00 means 10%).
type ItemInput struct {
	ID string `json:"id,omitempty"`

	TagSpec       string `json:"tag_spec"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	ProductInfo   string `json:"product_info"`
	Manufacturer  string `json:"manufacturer"`
	UnitOfMeasure string `json:"unit_of_measure"`

	MaterialQty decimal.Decimal `json:"material_qty"`

	WasteFactorPercent    decimal.Decimal `json:"waste_factor_percent"`
	AtticStockPercent     decimal.Decimal `json:"attic_stock_percent"`
	TaxPercent            decimal.Decimal `json:"tax_percent"`
	MarkupMaterialPercent decimal.Decimal `json:"markup_material_percent"`
	MarkupAddonsPercent   decimal.Decimal `json:"markup_addons_percent"`

	UnitCostMaterial  decimal.Decimal `json:"unit_cost_material"`
	UnitCostAdhesive  decimal.Decimal `json:"unit_cost_adhesive"`
	UnitCostFreight   decimal.Decimal `json:"unit_cost_freight"`
	UnitCostReceiving decimal.Decimal `json:"unit_cost_receiving"`
	UnitCostDelivery  decimal.Decimal `json:"unit_cost_delivery"`
	UnitCostLabor     decimal.Decimal `json:"unit_cost_labor"`
}

// ItemResult is an ItemInput plus its derived fields. ItemNo is assigned by
// whoever walks the project tree; Compute leaves it zero.
type ItemResult struct {
	ItemInput
	ItemNo int `json:"item_no"`

	WasteQty          decimal.Decimal `json:"waste_qty"`
	AtticQty          decimal.Decimal `json:"attic_qty"`
	TotalQty          decimal.Decimal `json:"total_qty"`
	TotalAddon        decimal.Decimal `json:"total_addon"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	UrbanTotalPlusTax decimal.Decimal `json:"urban_total_plus_tax"`
	MarkupMaterial    decimal.Decimal `json:"markup_material"`
	MarkupAddon       decimal.Decimal `json:"markup_addon"`
	TotalClientCost   decimal.Decimal `json:"total_client_cost"`
}

// Round2 rounds d to two fractional digits, ties away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// factor turns a whole-number percentage into a multiplier (10.00 -> 0.10).
func factor(percent decimal.Decimal) decimal.Decimal {
	return percent.Shift(-2)
}

// Compute derives the quantity, cost, tax and markup fields of one item.
// Intermediate values keep full precision; each output field is rounded once.
func Compute(item ItemInput) ItemResult {
	qty := item.MaterialQty

	wasteQty := qty.Mul(factor(item.WasteFactorPercent))
	atticQty := qty.Mul(factor(item.AtticStockPercent))
	totalQty := qty.Add(wasteQty).Add(atticQty)

	totalAddon := item.UnitCostMaterial.
		Add(item.UnitCostAdhesive).
		Add(item.UnitCostFreight).
		Add(item.UnitCostReceiving).
		Add(item.UnitCostDelivery).
		Add(item.UnitCostLabor)

	materialCost := totalQty.Mul(item.UnitCostMaterial)
	tax := materialCost.Mul(factor(item.TaxPercent))
	urbanTotal := totalQty.Mul(totalAddon).Add(tax)

	markupMaterial := materialCost.Mul(factor(item.MarkupMaterialPercent))

	// total_addon includes the material rate; take it back out so the add-on
	// markup only applies to ancillary costs.
	addonOnly := totalAddon.Sub(item.UnitCostMaterial)
	markupAddon := addonOnly.Mul(totalQty).Mul(factor(item.MarkupAddonsPercent))

	clientCost := urbanTotal.Add(markupMaterial).Add(markupAddon)

	return ItemResult{
		ItemInput:         item,
		WasteQty:          Round2(wasteQty),
		AtticQty:          Round2(atticQty),
		TotalQty:          Round2(totalQty),
		TotalAddon:        Round2(totalAddon),
		TotalMaterialCost: Round2(materialCost),
		TaxAmount:         Round2(tax),
		UrbanTotalPlusTax: Round2(urbanTotal),
		MarkupMaterial:    Round2(markupMaterial),
		MarkupAddon:       Round2(markupAddon),
		TotalClientCost:   Round2(clientCost),
	}
}
