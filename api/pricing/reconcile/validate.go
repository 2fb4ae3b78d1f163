package reconcile

import "github.com/shopspring/decimal"

// ValidateRow classifies a selected row. The importable values are the row's
// own purchase price, unit and currency; normalization was for comparison
// only. An unusable unit blocks the whole batch; a missing or non-positive
// price is coerced to zero and only warns.
func ValidateRow(row NormalizedPriceRow) ValidatedImportRow {
	out := ValidatedImportRow{
		NormalizedPriceRow: row,
		FinalPrice:         row.PurchasePrice,
		FinalUnit:          row.PurchaseUnit,
		FinalCurrency:      row.Currency,
	}

	if !out.FinalUnit.Valid() {
		out.HasInvalidUnit = true
	}

	if !out.FinalPrice.Positive() {
		out.HasZeroPrice = true
		out.FinalPrice = KnownPrice(decimal.Zero)
	}

	return out
}
