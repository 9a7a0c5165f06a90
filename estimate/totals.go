package estimate

import "github.com/shopspring/decimal"

// GrandTotals holds project-wide sums of already-rounded item values, so the
// printed totals always equal the sum of the printed lines.
type GrandTotals struct {
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	TotalPlusTax      decimal.Decimal `json:"total_plus_tax"`
	MarkupMaterial    decimal.Decimal `json:"markup_material"`
	MarkupAddon       decimal.Decimal `json:"markup_addon"`
	TotalClientCost   decimal.Decimal `json:"total_client_cost"`
}

// Add accumulates one item into the totals.
func (t *GrandTotals) Add(item ItemResult) {
	t.TotalMaterialCost = t.TotalMaterialCost.Add(item.TotalMaterialCost)
	t.TaxAmount = t.TaxAmount.Add(item.TaxAmount)
	t.TotalPlusTax = t.TotalPlusTax.Add(item.UrbanTotalPlusTax)
	t.MarkupMaterial = t.MarkupMaterial.Add(item.MarkupMaterial)
	t.MarkupAddon = t.MarkupAddon.Add(item.MarkupAddon)
	t.TotalClientCost = t.TotalClientCost.Add(item.TotalClientCost)
}

// Aggregate sums items in order. An empty or nil slice yields zero totals.
func Aggregate(items []ItemResult) GrandTotals {
	var totals GrandTotals
	for _, item := range items {
		totals.Add(item)
	}
	return totals
}
