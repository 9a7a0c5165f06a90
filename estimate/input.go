package estimate

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var errNotNumber = errors.New("not a number")

// Field names at the input boundary.
const (
	FieldMaterialQty           = "material_qty"
	FieldWasteFactorPercent    = "waste_factor_percent"
	FieldAtticStockPercent     = "attic_stock_percent"
	FieldTaxPercent            = "tax_percent"
	FieldMarkupMaterialPercent = "markup_material_percent"
	FieldMarkupAddonsPercent   = "markup_addons_percent"
	FieldUnitCostMaterial      = "unit_cost_material"
	FieldUnitCostAdhesive      = "unit_cost_adhesive"
	FieldUnitCostFreight       = "unit_cost_freight"
	FieldUnitCostReceiving     = "unit_cost_receiving"
	FieldUnitCostDelivery      = "unit_cost_delivery"
	FieldUnitCostLabor         = "unit_cost_labor"

	FieldTagSpec       = "tag_spec"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldProductInfo   = "product_info"
	FieldManufacturer  = "manufacturer"
	FieldUnitOfMeasure = "unit_of_measure"
)

// NumericFields lists every numeric input field in display order.
var NumericFields = []string{
	FieldMaterialQty,
	FieldWasteFactorPercent,
	FieldAtticStockPercent,
	FieldTaxPercent,
	FieldMarkupMaterialPercent,
	FieldMarkupAddonsPercent,
	FieldUnitCostMaterial,
	FieldUnitCostAdhesive,
	FieldUnitCostFreight,
	FieldUnitCostReceiving,
	FieldUnitCostDelivery,
	FieldUnitCostLabor,
}

// TextFields lists the descriptive passthrough fields.
var TextFields = []string{
	FieldTagSpec,
	FieldDescription,
	FieldLocation,
	FieldProductInfo,
	FieldManufacturer,
	FieldUnitOfMeasure,
}

// MaxAbsAmount is the largest magnitude a numeric input may have: twelve
// integer digits and two fractional digits, the range of the stored columns.
var MaxAbsAmount = decimal.RequireFromString("999999999999.99")

// maxIntegerDigits is the number of integer digits in MaxAbsAmount.
const maxIntegerDigits = 12

// ParseDecimal coerces a boundary value to a decimal rounded to two places,
// the precision every stored amount has. nil and blank strings are zero.
// Values that are not plain decimal numbers (including exponent notation)
// or exceed MaxAbsAmount fail with *InvalidNumericInputError naming itemID
// and field.
func ParseDecimal(itemID, field string, v any) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero, &InvalidNumericInputError{ItemID: itemID, Field: field, Value: v}
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	// Magnitude is judged from the coefficient length and exponent so that
	// no rescale of an extreme exponent ever happens.
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > maxIntegerDigits {
		return decimal.Zero, &InvalidNumericInputError{ItemID: itemID, Field: field, Value: v, Reason: "out of range"}
	}
	if magnitude <= -3 {
		// |d| < 0.001 rounds to zero.
		return decimal.Zero, nil
	}

	d = Round2(d)
	if d.Abs().GreaterThan(MaxAbsAmount) {
		return decimal.Zero, &InvalidNumericInputError{ItemID: itemID, Field: field, Value: v, Reason: "out of range"}
	}
	return d, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, nil
		}
		return *val, nil
	case bool:
		// cast would happily turn true into "true"; booleans are never numbers here.
		return decimal.Zero, errNotNumber
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, errNotNumber
		}
		return decimal.NewFromFloat(val), nil
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero, errNotNumber
		}
		return decimal.NewFromFloat32(val), nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, errNotNumber
	}
	return decimal.NewFromString(s)
}

// ParseItemInput builds an ItemInput from a field map. Absent numeric keys
// default to zero and absent text keys to "". The first invalid numeric field
// fails the whole item.
func ParseItemInput(itemID string, fields map[string]any) (ItemInput, error) {
	in := ItemInput{ID: itemID}
	for _, name := range NumericFields {
		d, err := ParseDecimal(itemID, name, fields[name])
		if err != nil {
			return ItemInput{}, err
		}
		in.SetNumeric(name, d)
	}
	for _, name := range TextFields {
		in.SetText(name, cast.ToString(fields[name]))
	}
	return in, nil
}

// SetNumeric assigns a numeric field by boundary name. Unknown names are ignored.
func (in *ItemInput) SetNumeric(name string, d decimal.Decimal) {
	switch name {
	case FieldMaterialQty:
		in.MaterialQty = d
	case FieldWasteFactorPercent:
		in.WasteFactorPercent = d
	case FieldAtticStockPercent:
		in.AtticStockPercent = d
	case FieldTaxPercent:
		in.TaxPercent = d
	case FieldMarkupMaterialPercent:
		in.MarkupMaterialPercent = d
	case FieldMarkupAddonsPercent:
		in.MarkupAddonsPercent = d
	case FieldUnitCostMaterial:
		in.UnitCostMaterial = d
	case FieldUnitCostAdhesive:
		in.UnitCostAdhesive = d
	case FieldUnitCostFreight:
		in.UnitCostFreight = d
	case FieldUnitCostReceiving:
		in.UnitCostReceiving = d
	case FieldUnitCostDelivery:
		in.UnitCostDelivery = d
	case FieldUnitCostLabor:
		in.UnitCostLabor = d
	}
}

// Numeric returns a numeric field by boundary name.
func (in ItemInput) Numeric(name string) decimal.Decimal {
	switch name {
	case FieldMaterialQty:
		return in.MaterialQty
	case FieldWasteFactorPercent:
		return in.WasteFactorPercent
	case FieldAtticStockPercent:
		return in.AtticStockPercent
	case FieldTaxPercent:
		return in.TaxPercent
	case FieldMarkupMaterialPercent:
		return in.MarkupMaterialPercent
	case FieldMarkupAddonsPercent:
		return in.MarkupAddonsPercent
	case FieldUnitCostMaterial:
		return in.UnitCostMaterial
	case FieldUnitCostAdhesive:
		return in.UnitCostAdhesive
	case FieldUnitCostFreight:
		return in.UnitCostFreight
	case FieldUnitCostReceiving:
		return in.UnitCostReceiving
	case FieldUnitCostDelivery:
		return in.UnitCostDelivery
	case FieldUnitCostLabor:
		return in.UnitCostLabor
	}
	return decimal.Zero
}

// SetText assigns a descriptive field by boundary name.
func (in *ItemInput) SetText(name, value string) {
	switch name {
	case FieldTagSpec:
		in.TagSpec = value
	case FieldDescription:
		in.Description = value
	case FieldLocation:
		in.Location = value
	case FieldProductInfo:
		in.ProductInfo = value
	case FieldManufacturer:
		in.Manufacturer = value
	case FieldUnitOfMeasure:
		in.UnitOfMeasure = value
	}
}

// Text returns a descriptive field by boundary name.
func (in ItemInput) Text(name string) string {
	switch name {
	case FieldTagSpec:
		return in.TagSpec
	case FieldDescription:
		return in.Description
	case FieldLocation:
		return in.Location
	case FieldProductInfo:
		return in.ProductInfo
	case FieldManufacturer:
		return in.Manufacturer
	case FieldUnitOfMeasure:
		return in.UnitOfMeasure
	}
	return ""
}
