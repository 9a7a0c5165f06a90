package estimate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// MaxPercent bounds percentages accepted by Validate.
var MaxPercent = decimal.NewFromInt(1000)

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_not_decimal", "must be a decimal number")
	}
	if d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}

func percentRange(value interface{}) error {
	if err := nonNegative(value); err != nil {
		return err
	}
	if value.(decimal.Decimal).GreaterThan(MaxPercent) {
		return validation.NewError("validation_percent_range", "must be at most "+MaxPercent.String())
	}
	return nil
}

// Validate applies range checks to an item's numeric inputs. Compute never
// calls it: negative values are accepted there and applied algebraically.
// Callers that want a strict policy run Validate first.
// The returned error is a validation.Errors keyed by boundary field name.
func Validate(item ItemInput) error {
	nn := validation.By(nonNegative)
	pct := validation.By(percentRange)
	return validation.ValidateStruct(&item,
		validation.Field(&item.MaterialQty, nn),
		validation.Field(&item.WasteFactorPercent, pct),
		validation.Field(&item.AtticStockPercent, pct),
		validation.Field(&item.TaxPercent, pct),
		validation.Field(&item.MarkupMaterialPercent, pct),
		validation.Field(&item.MarkupAddonsPercent, pct),
		validation.Field(&item.UnitCostMaterial, nn),
		validation.Field(&item.UnitCostAdhesive, nn),
		validation.Field(&item.UnitCostFreight, nn),
		validation.Field(&item.UnitCostReceiving, nn),
		validation.Field(&item.UnitCostDelivery, nn),
		validation.Field(&item.UnitCostLabor, nn),
	)
}
