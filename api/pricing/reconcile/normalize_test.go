package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() RateTable {
	return NewRateTable("IDR", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(15000),
		"EUR": decimal.NewFromInt(17500),
	})
}

func priceRow(price float64, currency, unit string, entry CatalogEntry) ResolvedRow {
	return ResolvedRow{
		NormalizedMaterialRow: NormalizedMaterialRow{
			RawMaterialRow: RawMaterialRow{
				RowNumber:     2,
				PurchaseUnit:  ParseUnit(unit),
				Currency:      currency,
				PurchasePrice: PriceFromFloat(price),
			},
			CanonicalCode: entry.Code,
		},
		Entry: entry,
	}
}

func kgEntry() CatalogEntry {
	return CatalogEntry{Code: "100", Class: ClassRaw, BaseUnit: "KG", Density: decimal.NewFromInt(1)}
}

func TestNormalizePriceCurrencyStep(t *testing.T) {
	// USD row converts at the period rate, IDR row passes through unchanged;
	// the converted USD price outranks the local one
	usd, err := NormalizePrice(priceRow(10, "USD", "KG", kgEntry()), testRates())
	require.NoError(t, err)
	idr, err := NormalizePrice(priceRow(95000, "IDR", "KG", kgEntry()), testRates())
	require.NoError(t, err)

	assert.True(t, usd.NormalizedPrice.Equal(decimal.NewFromInt(150000)), "got %s", usd.NormalizedPrice)
	assert.True(t, idr.NormalizedPrice.Equal(decimal.NewFromInt(95000)), "got %s", idr.NormalizedPrice)
	assert.True(t, usd.NormalizedPrice.GreaterThan(idr.NormalizedPrice))
}

func TestNormalizePriceEmptyCurrencyIsBase(t *testing.T) {
	row, err := NormalizePrice(priceRow(5000, "", "KG", kgEntry()), testRates())
	require.NoError(t, err)
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(5000)))
}

func TestNormalizePriceMissingRate(t *testing.T) {
	_, err := NormalizePrice(priceRow(10, "SGD", "KG", kgEntry()), testRates())
	require.Error(t, err)
	var noRate *NoRateError
	require.ErrorAs(t, err, &noRate)
	assert.Equal(t, "SGD", noRate.Currency)
}

func TestNormalizePriceSubUnitScale(t *testing.T) {
	// price per gram is 1000x the price per kilogram
	row, err := NormalizePrice(priceRow(50, "IDR", "G", kgEntry()), testRates())
	require.NoError(t, err)
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(50000)), "got %s", row.NormalizedPrice)
}

func TestNormalizePriceCrossDimensionDensity(t *testing.T) {
	entry := kgEntry()
	entry.BaseUnit = "L"
	entry.Density = decimal.NewFromFloat(0.8)

	// price per KG against a volume-based material: divide by density
	row, err := NormalizePrice(priceRow(800, "IDR", "KG", entry), testRates())
	require.NoError(t, err)
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(1000)), "got %s", row.NormalizedPrice)
	assert.False(t, row.LowConfidenceDensity)
}

func TestNormalizePriceStepsApplyInOrder(t *testing.T) {
	entry := kgEntry()
	entry.BaseUnit = "L"
	entry.Density = decimal.NewFromInt(2)

	// USD price per gram for a volume material: rate, then x1000, then /density
	row, err := NormalizePrice(priceRow(1, "USD", "G", entry), testRates())
	require.NoError(t, err)
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(7500000)), "got %s", row.NormalizedPrice)
}

func TestNormalizePriceZeroDensityFlagsLowConfidence(t *testing.T) {
	entry := kgEntry()
	entry.BaseUnit = "L"
	entry.Density = decimal.Zero

	row, err := NormalizePrice(priceRow(800, "IDR", "KG", entry), testRates())
	require.NoError(t, err)
	assert.True(t, row.LowConfidenceDensity)
	// face value kept rather than failing quietly
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(800)))
}

func TestNormalizePriceUnknownUnitSkipsUnitSteps(t *testing.T) {
	row, err := NormalizePrice(priceRow(120, "IDR", "PCS", kgEntry()), testRates())
	require.NoError(t, err)
	assert.True(t, row.NormalizedPrice.Equal(decimal.NewFromInt(120)))
	assert.False(t, row.LowConfidenceDensity)
}

func TestNormalizePriceUnsetPriceComparesAsZero(t *testing.T) {
	row := priceRow(0, "IDR", "KG", kgEntry())
	row.PurchasePrice = UnsetPrice()
	out, err := NormalizePrice(row, testRates())
	require.NoError(t, err)
	assert.True(t, out.NormalizedPrice.IsZero())
}

func TestCurrencyRoundTrip(t *testing.T) {
	rates := testRates()
	rate, ok := rates.Rate("usd")
	require.True(t, ok, "rate lookup is case-insensitive")

	original := decimal.NewFromFloat(123.45)
	back := original.Mul(rate).Div(rate)
	diff := back.Sub(original).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(1e-9)), "round trip drifted by %s", diff)
}

func TestUnitDimension(t *testing.T) {
	for unit, want := range map[string]Dimension{
		"KG": DimensionMass, "g": DimensionMass, "GR": DimensionMass,
		"L": DimensionVolume, "ml": DimensionVolume, "LT": DimensionVolume,
	} {
		dim, ok := UnitDimension(unit)
		assert.True(t, ok, unit)
		assert.Equal(t, want, dim, unit)
	}
	_, ok := UnitDimension("PCS")
	assert.False(t, ok)
}
