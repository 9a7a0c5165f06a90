package services

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"costestimator/estimate"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Errorf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

// referenceItem is an item whose total client cost is $409.40.
func referenceItem(id, description string) estimate.ItemInput {
	return estimate.ItemInput{
		ID:                    id,
		TagSpec:               "T-1",
		Description:           description,
		UnitOfMeasure:         "SF",
		MaterialQty:           dec("100"),
		WasteFactorPercent:    dec("10"),
		AtticStockPercent:     dec("5"),
		UnitCostMaterial:      dec("2"),
		UnitCostLabor:         dec("1"),
		TaxPercent:            dec("8"),
		MarkupMaterialPercent: dec("15"),
		MarkupAddonsPercent:   dec("10"),
	}
}

// sampleTree has one category with a direct item and a subcategory holding
// two items, plus a second empty category.
func sampleTree() ProjectTree {
	return ProjectTree{
		Project: ProjectInfo{
			ID:          "p1",
			CompanyName: "Urban Interiors",
			ProjectName: "Clinic Fit-Out",
			ProjectDate: "2026-01-15",
			Revision:    "2",
		},
		Categories: []CategoryNode{
			{
				ID:    "c1",
				Name:  "Flooring",
				Items: []estimate.ItemInput{referenceItem("i1", "Carpet tile")},
				Subcategories: []SubcategoryNode{
					{
						ID:   "s1",
						Name: "Base",
						Items: []estimate.ItemInput{
							referenceItem("i2", "Rubber base"),
							referenceItem("i3", "=SUM(A1)"),
						},
					},
				},
			},
			{ID: "c2", Name: "Paint"},
		},
	}
}
