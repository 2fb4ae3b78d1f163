package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ------------------------- Material classes -------------------------

// MaterialClass is the fixed two-letter class code stored in the price master:
// BB (bahan baku / raw material) or BK (bahan kemas / packaging material).
type MaterialClass string

const (
	ClassRaw       MaterialClass = "BB"
	ClassPackaging MaterialClass = "BK"
)

func (c MaterialClass) Valid() bool {
	return c == ClassRaw || c == ClassPackaging
}

// ParseClassLabel maps the free-form class label found in source sheets to a
// MaterialClass. Labels are matched case-insensitively.
func ParseClassLabel(label string) (MaterialClass, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BB", "RAW", "RAW MATERIAL", "BAHAN BAKU":
		return ClassRaw, true
	case "BK", "PACKAGING", "PACKAGING MATERIAL", "BAHAN KEMAS":
		return ClassPackaging, true
	}
	return "", false
}

// ------------------------- Price -------------------------

// Price is either a known amount or unset. Source sheets mix empty cells,
// junk text and real numbers for the price column; every consumer matches on
// Known() instead of re-deriving its own presence rule.
type Price struct {
	value decimal.Decimal
	known bool
}

func KnownPrice(v decimal.Decimal) Price {
	return Price{value: v, known: true}
}

// PriceFromFloat builds a known Price, treating NaN and infinities as unset.
func PriceFromFloat(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return KnownPrice(decimal.NewFromFloat(v))
}

func UnsetPrice() Price {
	return Price{}
}

func (p Price) Known() bool {
	return p.known
}

// Value returns the amount, decimal zero when unset.
func (p Price) Value() decimal.Decimal {
	if !p.known {
		return decimal.Zero
	}
	return p.value
}

// Positive reports whether the price is known and strictly greater than zero.
func (p Price) Positive() bool {
	return p.known && p.value.IsPositive()
}

// ------------------------- Unit -------------------------

// Unit is either a usable purchase unit or invalid. A unit is invalid when it
// is empty, a pure numeric string, or one of the placeholder strings that
// source spreadsheets use for "no value".
type Unit struct {
	name  string
	valid bool
}

func ParseUnit(raw string) Unit {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Unit{}
	}
	switch strings.ToLower(name) {
	case "null", "undefined", "(none)", "none":
		return Unit{}
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(name, ",", "."), 64); err == nil {
		return Unit{}
	}
	return Unit{name: name, valid: true}
}

func (u Unit) Valid() bool {
	return u.valid
}

// Name returns the unit as written in the source, empty when invalid.
func (u Unit) Name() string {
	if !u.valid {
		return ""
	}
	return u.name
}

// ------------------------- Row types -------------------------

// RawMaterialRow is one source spreadsheet row as emitted by the workbook
// reader. RowNumber is the 1-based position in the original sheet and is
// carried through the whole pipeline for error reporting.
type RawMaterialRow struct {
	RowNumber     int
	ClassLabel    string
	RawCode       string
	Name          string
	PurchaseUnit  Unit
	Currency      string
	PurchasePrice Price
}

// NormalizedMaterialRow adds the canonical material code used as the
// deduplication key. CanonicalCode is derived once and never changes.
type NormalizedMaterialRow struct {
	RawMaterialRow
	CanonicalCode string
	OriginalCode  string
}

// ResolvedRow pairs a normalized row with its catalog entry.
type ResolvedRow struct {
	NormalizedMaterialRow
	Entry CatalogEntry
}

// NormalizedPriceRow carries the comparison price in base currency and base
// unit. The normalized price is used only to pick duplicate winners; the
// persisted values stay in the row's original currency and unit.
type NormalizedPriceRow struct {
	ResolvedRow
	NormalizedPrice      decimal.Decimal
	IsDuplicateGroup     bool
	LowConfidenceDensity bool
}

// ValidatedImportRow is the final per-material row after winner selection and
// validation.
type ValidatedImportRow struct {
	NormalizedPriceRow
	FinalPrice     Price
	FinalUnit      Unit
	FinalCurrency  string
	HasInvalidUnit bool
	HasZeroPrice   bool
}

// ImportBatch is the reconciled result for one upload. Admissible is false
// when any row has an unusable unit; an inadmissible batch must not be
// persisted.
type ImportBatch struct {
	Rows       []ValidatedImportRow
	Admissible bool
}

func NewImportBatch(rows []ValidatedImportRow) ImportBatch {
	batch := ImportBatch{Rows: rows, Admissible: true}
	for _, row := range rows {
		if row.HasInvalidUnit {
			batch.Admissible = false
			break
		}
	}
	return batch
}
