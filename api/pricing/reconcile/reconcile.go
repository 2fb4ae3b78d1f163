package reconcile

import (
	"fmt"
	"sort"
)

// Input is everything one reconciliation run consumes. Catalog and Rates are
// snapshots fetched before the run; the pipeline itself never touches I/O.
type Input struct {
	TargetClass MaterialClass
	Rows        []RawMaterialRow
	Catalog     Catalog
	Rates       RateTable
}

// Result is the reconciled batch plus one outcome per source row, in source
// row order.
type Result struct {
	Batch    ImportBatch
	Outcomes []Outcome
}

// Run executes the full pipeline: canonicalize codes, resolve the catalog,
// group duplicates, normalize prices, pick winners, validate. Identical
// inputs produce identical results.
func Run(in Input) (Result, error) {
	if !in.TargetClass.Valid() {
		return Result{}, fmt.Errorf("invalid target material class %q", in.TargetClass)
	}

	outcomes := make([]Outcome, 0, len(in.Rows))

	// canonicalize, then resolve against the catalog; rows that fail here are
	// excluded from the batch but still get a reported outcome
	resolved := make([]ResolvedRow, 0, len(in.Rows))
	for _, raw := range in.Rows {
		norm := NormalizedMaterialRow{
			RawMaterialRow: raw,
			OriginalCode:   raw.RawCode,
			CanonicalCode:  CanonicalCode(raw.RawCode),
		}

		label, ok := ParseClassLabel(raw.ClassLabel)
		if !ok || label != in.TargetClass {
			outcomes = append(outcomes, Outcome{
				RowNumber:     raw.RowNumber,
				CanonicalCode: norm.CanonicalCode,
				Code:          OutcomeRejectedWrongClass,
				Detail:        fmt.Sprintf("class label %q does not match target class %s", raw.ClassLabel, in.TargetClass),
			})
			continue
		}

		entry, found := in.Catalog.Resolve(norm.CanonicalCode)
		if !found {
			outcomes = append(outcomes, Outcome{
				RowNumber:     raw.RowNumber,
				CanonicalCode: norm.CanonicalCode,
				Code:          OutcomeRejectedUnresolved,
				Detail:        fmt.Sprintf("code %q (from %q) not in material master", norm.CanonicalCode, raw.RawCode),
			})
			continue
		}
		if entry.Class != in.TargetClass {
			outcomes = append(outcomes, Outcome{
				RowNumber:     raw.RowNumber,
				CanonicalCode: norm.CanonicalCode,
				Code:          OutcomeRejectedWrongClass,
				Detail:        fmt.Sprintf("material master lists %q as class %s", norm.CanonicalCode, entry.Class),
			})
			continue
		}

		resolved = append(resolved, ResolvedRow{NormalizedMaterialRow: norm, Entry: entry})
	}

	validated := make([]ValidatedImportRow, 0, len(resolved))
	for _, group := range GroupByCanonicalCode(resolved) {
		rows := make([]NormalizedPriceRow, 0, len(group.Rows))
		for _, row := range group.Rows {
			normRow, err := NormalizePrice(row, in.Rates)
			if err != nil {
				outcomes = append(outcomes, Outcome{
					RowNumber:     row.RowNumber,
					CanonicalCode: row.CanonicalCode,
					Code:          OutcomeRejectedUnresolved,
					Detail:        err.Error(),
				})
				continue
			}
			rows = append(rows, normRow)
		}
		if len(rows) == 0 {
			continue
		}

		duplicate := len(rows) > 1
		for i := range rows {
			rows[i].IsDuplicateGroup = duplicate
		}

		winner, losers := PickWinner(rows)
		for _, loser := range losers {
			outcomes = append(outcomes, Outcome{
				RowNumber:            loser.RowNumber,
				CanonicalCode:        loser.CanonicalCode,
				Code:                 OutcomeSupersededDuplicate,
				Detail:               fmt.Sprintf("duplicate of row %d which has the higher normalized price", winner.RowNumber),
				LowConfidenceDensity: loser.LowConfidenceDensity,
			})
		}

		row := ValidateRow(winner)
		validated = append(validated, row)
		outcomes = append(outcomes, Outcome{
			RowNumber:            row.RowNumber,
			CanonicalCode:        row.CanonicalCode,
			Code:                 rowOutcome(row),
			LowConfidenceDensity: row.LowConfidenceDensity,
		})
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].RowNumber < outcomes[j].RowNumber
	})

	return Result{
		Batch:    NewImportBatch(validated),
		Outcomes: outcomes,
	}, nil
}

func rowOutcome(row ValidatedImportRow) OutcomeCode {
	switch {
	case row.HasInvalidUnit:
		return OutcomeBlockedInvalidUnit
	case row.HasZeroPrice:
		return OutcomeWarningZeroPrice
	case row.IsDuplicateGroup:
		return OutcomeDuplicateWinner
	}
	return OutcomeImported
}
