package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	valid := []string{"KG", "Gram", "btl", "pcs", "drum 200L"}
	for _, s := range valid {
		assert.True(t, ParseUnit(s).Valid(), "%q should be usable", s)
	}

	invalid := []string{"", "   ", "5", "12.5", "12,5", "null", "NULL", "undefined", "(none)", "None"}
	for _, s := range invalid {
		assert.False(t, ParseUnit(s).Valid(), "%q should be invalid", s)
	}
}

func validatedInput(unit string, price Price) NormalizedPriceRow {
	return NormalizedPriceRow{
		ResolvedRow: ResolvedRow{
			NormalizedMaterialRow: NormalizedMaterialRow{
				RawMaterialRow: RawMaterialRow{
					RowNumber:     2,
					PurchaseUnit:  ParseUnit(unit),
					Currency:      "IDR",
					PurchasePrice: price,
				},
				CanonicalCode: "100",
			},
		},
	}
}

func TestValidateRowNumericUnitBlocks(t *testing.T) {
	row := ValidateRow(validatedInput("5", PriceFromFloat(1000)))
	assert.True(t, row.HasInvalidUnit)
	assert.False(t, row.HasZeroPrice)

	// one blocked row poisons the whole batch
	ok := ValidateRow(validatedInput("KG", PriceFromFloat(1000)))
	batch := NewImportBatch([]ValidatedImportRow{ok, row})
	assert.False(t, batch.Admissible)
}

func TestValidateRowZeroPriceWarnsAndCoerces(t *testing.T) {
	for name, price := range map[string]Price{
		"zero":     PriceFromFloat(0),
		"negative": PriceFromFloat(-3),
		"unset":    UnsetPrice(),
	} {
		row := ValidateRow(validatedInput("KG", price))
		assert.True(t, row.HasZeroPrice, name)
		assert.False(t, row.HasInvalidUnit, name)
		assert.True(t, row.FinalPrice.Known(), name)
		assert.True(t, row.FinalPrice.Value().IsZero(), name)
	}

	// warning rows do not block the batch
	batch := NewImportBatch([]ValidatedImportRow{ValidateRow(validatedInput("KG", UnsetPrice()))})
	assert.True(t, batch.Admissible)
}

func TestValidateRowKeepsSourceValues(t *testing.T) {
	in := validatedInput("Gram", PriceFromFloat(2500))
	in.Currency = "USD"
	in.NormalizedPrice = decimal.NewFromInt(999999)

	row := ValidateRow(in)
	assert.Equal(t, "Gram", row.FinalUnit.Name())
	assert.Equal(t, "USD", row.FinalCurrency)
	assert.True(t, row.FinalPrice.Value().Equal(decimal.NewFromInt(2500)))
}

func TestNewImportBatchAdmissibility(t *testing.T) {
	clean := ValidateRow(validatedInput("KG", PriceFromFloat(10)))
	blocked := ValidateRow(validatedInput("", PriceFromFloat(10)))

	assert.True(t, NewImportBatch([]ValidatedImportRow{clean}).Admissible)
	assert.True(t, NewImportBatch(nil).Admissible)
	assert.False(t, NewImportBatch([]ValidatedImportRow{clean, blocked}).Admissible)

	// invariant both ways: admissible batches contain no invalid-unit rows
	batch := NewImportBatch([]ValidatedImportRow{clean, blocked})
	if batch.Admissible {
		for _, r := range batch.Rows {
			assert.False(t, r.HasInvalidUnit)
		}
	}
}
