package reconcile

import "github.com/shopspring/decimal"

// ImportRecord is the persistence shape for one admitted row. Price is always
// a concrete number (coerced zero-price rows persist 0); Unit and Currency
// are nil when the source had no usable value.
type ImportRecord struct {
	MaterialCode      string
	MaterialClass     MaterialClass
	Unit              *string
	Price             decimal.Decimal
	Currency          *string
	NormalizedPrice   decimal.Decimal
	IsDuplicateWinner bool
	SubmittedBy       string
	SourceRowNumber   int
}

// MasterPriceRecord is one existing row of the price master, as loaded before
// an import. The nullable fields decide whether the row is real data or a
// placeholder.
type MasterPriceRecord struct {
	MaterialCode  string
	MaterialClass MaterialClass
	Price         *decimal.Decimal
	Unit          *string
	Currency      *string
}

// HasPriceData reports whether any of the price fields is non-null. Rows
// where every price field is null are placeholders and are never deleted.
func (r MasterPriceRecord) HasPriceData() bool {
	return r.Price != nil || r.Unit != nil || r.Currency != nil
}

// ToImportRecords maps a batch into the persisted shape. The caller must only
// persist records from an admissible batch.
func ToImportRecords(batch ImportBatch, submittedBy string) []ImportRecord {
	records := make([]ImportRecord, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		rec := ImportRecord{
			MaterialCode:      row.CanonicalCode,
			MaterialClass:     row.Entry.Class,
			Price:             row.FinalPrice.Value(),
			NormalizedPrice:   row.NormalizedPrice,
			IsDuplicateWinner: row.IsDuplicateGroup,
			SubmittedBy:       submittedBy,
			SourceRowNumber:   row.RowNumber,
		}
		if row.FinalUnit.Valid() {
			unit := row.FinalUnit.Name()
			rec.Unit = &unit
		}
		if cur := row.FinalCurrency; cur != "" {
			rec.Currency = &cur
		}
		records = append(records, rec)
	}
	return records
}

// DeleteSet returns the canonical codes that must be removed from the price
// master before the batch is inserted: every master row of the target class
// that carries real price data. All-null placeholder rows survive the
// replace untouched.
func DeleteSet(master []MasterPriceRecord, class MaterialClass) []string {
	seen := make(map[string]bool, len(master))
	codes := make([]string, 0, len(master))
	for _, rec := range master {
		if rec.MaterialClass != class || !rec.HasPriceData() {
			continue
		}
		if seen[rec.MaterialCode] {
			continue
		}
		seen[rec.MaterialCode] = true
		codes = append(codes, rec.MaterialCode)
	}
	return codes
}
