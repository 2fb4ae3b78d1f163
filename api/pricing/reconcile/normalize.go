package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var subUnitScale = decimal.NewFromInt(1000)

// UnitDimension classifies a purchase unit as mass or volume. Units outside
// the table (PCS, BOX, ...) have no dimension and skip unit conversion.
func UnitDimension(name string) (Dimension, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "KG", "KILOGRAM", "G", "GR", "GRAM":
		return DimensionMass, true
	case "L", "LT", "LTR", "LITER", "ML", "MILILITER", "MILLILITER":
		return DimensionVolume, true
	}
	return DimensionUnknown, false
}

// isSubUnit reports whether the unit is a 1/1000 sub-unit of its base unit
// (grams for kilograms, milliliters for liters). A price quoted per sub-unit
// is 1000x the price per base unit.
func isSubUnit(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "G", "GR", "GRAM", "ML", "MILILITER", "MILLILITER":
		return true
	}
	return false
}

// RateTable is a snapshot of currency rates for one period, expressed as
// multipliers into the base currency.
type RateTable struct {
	base  string
	rates map[string]decimal.Decimal
}

func NewRateTable(base string, rates map[string]decimal.Decimal) RateTable {
	m := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		m[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return RateTable{base: strings.ToUpper(base), rates: m}
}

func (t RateTable) Base() string {
	return t.base
}

func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := t.rates[strings.ToUpper(strings.TrimSpace(code))]
	return rate, ok
}

// NoRateError marks a row whose currency has no rate in the period snapshot.
type NoRateError struct {
	Currency string
}

func (e *NoRateError) Error() string {
	return fmt.Sprintf("no currency rate for %s in period snapshot", e.Currency)
}

// NormalizePrice converts one row's price to the comparison basis: base
// currency first, then base unit. The steps always run in the same order
// (currency rate, then sub-unit scale, then cross-dimension density) so the
// result is reproducible from the inputs alone.
//
// An empty currency cell means the price is already quoted in the base
// currency. A known non-base currency without a rate makes the row
// unresolvable and the caller must exclude it.
func NormalizePrice(row ResolvedRow, rates RateTable) (NormalizedPriceRow, error) {
	out := NormalizedPriceRow{ResolvedRow: row}
	price := row.PurchasePrice.Value()

	// 1. currency
	currency := strings.ToUpper(strings.TrimSpace(row.Currency))
	if currency != "" && currency != rates.Base() {
		rate, ok := rates.Rate(currency)
		if !ok {
			return out, &NoRateError{Currency: currency}
		}
		price = price.Mul(rate)
	}

	// 2. sub-unit scale
	unit := row.PurchaseUnit.Name()
	if row.PurchaseUnit.Valid() && isSubUnit(unit) {
		price = price.Mul(subUnitScale)
	}

	// 3. cross-dimension via density
	if row.PurchaseUnit.Valid() {
		unitDim, known := UnitDimension(unit)
		entryDim := row.Entry.Dimension()
		if known && entryDim != DimensionUnknown && unitDim != entryDim {
			if row.Entry.Density.IsPositive() {
				price = price.Div(row.Entry.Density)
			} else {
				// no usable density: keep the face value but mark the row so
				// the caller can surface it
				out.LowConfidenceDensity = true
			}
		}
	}

	out.NormalizedPrice = price
	return out, nil
}
