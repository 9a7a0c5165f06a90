package services

import "costestimator/estimate"

// TemplateField describes one column in the item import template.
type TemplateField struct {
	Key          string // internal name, matches PocketBase field name
	Label        string // human-readable header shown in Excel
	Description  string // shown on the Instructions sheet
	FormatRule   string // e.g. "Number", "Percent (10 = 10%)"
	ExampleValue string // shown on the Instructions sheet
	Numeric      bool
}

// ItemTemplateFields returns the ordered list of columns for item import.
func ItemTemplateFields() []TemplateField {
	const (
		number  = "Number, blank = 0"
		percent = "Percent, 10 = 10%; blank = 0"
		money   = "Dollars per unit, blank = 0"
	)
	return []TemplateField{
		{Key: estimate.FieldTagSpec, Label: "Tag/ Spec", Description: "Drawing tag or spec section", ExampleValue: "CPT-1"},
		{Key: estimate.FieldDescription, Label: "Description", Description: "What is being supplied", ExampleValue: "Carpet tile"},
		{Key: estimate.FieldLocation, Label: "Location", Description: "Where it is installed", ExampleValue: "Level 2 corridors"},
		{Key: estimate.FieldProductInfo, Label: "Product Info", Description: "Product line, colour or style", ExampleValue: "Interface Open Air 402"},
		{Key: estimate.FieldManufacturer, Label: "Manufacturer", Description: "Manufacturer name", ExampleValue: "Interface"},
		{Key: estimate.FieldUnitOfMeasure, Label: "UoM", Description: "Unit of measure (select from dropdown)", ExampleValue: "SY"},
		{Key: estimate.FieldMaterialQty, Label: "Material Qty", Description: "Base quantity before waste and attic stock", FormatRule: number, ExampleValue: "1250", Numeric: true},
		{Key: estimate.FieldWasteFactorPercent, Label: "Waste %", Description: "Waste allowance on the base quantity", FormatRule: percent, ExampleValue: "5", Numeric: true},
		{Key: estimate.FieldAtticStockPercent, Label: "Attic %", Description: "Spare stock left for the owner", FormatRule: percent, ExampleValue: "2", Numeric: true},
		{Key: estimate.FieldUnitCostMaterial, Label: "Material", Description: "Material cost per unit", FormatRule: money, ExampleValue: "28.50", Numeric: true},
		{Key: estimate.FieldUnitCostAdhesive, Label: "Adhesive", Description: "Adhesive cost per unit", FormatRule: money, ExampleValue: "1.10", Numeric: true},
		{Key: estimate.FieldUnitCostFreight, Label: "Freight", Description: "Freight cost per unit", FormatRule: money, ExampleValue: "0.75", Numeric: true},
		{Key: estimate.FieldUnitCostReceiving, Label: "Receiving", Description: "Receiving cost per unit", FormatRule: money, ExampleValue: "0.20", Numeric: true},
		{Key: estimate.FieldUnitCostDelivery, Label: "Delivery", Description: "Delivery cost per unit", FormatRule: money, ExampleValue: "0.30", Numeric: true},
		{Key: estimate.FieldUnitCostLabor, Label: "Labor", Description: "Install labor per unit", FormatRule: money, ExampleValue: "6.00", Numeric: true},
		{Key: estimate.FieldTaxPercent, Label: "Tax %", Description: "Sales tax on material", FormatRule: percent, ExampleValue: "8.25", Numeric: true},
		{Key: estimate.FieldMarkupMaterialPercent, Label: "Mark up Material %", Description: "Markup on material cost", FormatRule: percent, ExampleValue: "15", Numeric: true},
		{Key: estimate.FieldMarkupAddonsPercent, Label: "Mark up Add On %", Description: "Markup on add-on costs", FormatRule: percent, ExampleValue: "10", Numeric: true},
	}
}

// UOMOptions lists the units of measure offered in the import template.
var UOMOptions = []string{
	"SF",
	"SY",
	"LF",
	"EA",
	"CY",
	"GAL",
	"BOX",
	"ROLL",
	"PAIL",
	"TUBE",
	"LS",
	"HR",
}
