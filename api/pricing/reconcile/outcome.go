package reconcile

// OutcomeCode is the per-row result of a reconciliation run. Every source row
// ends up with exactly one outcome; nothing is dropped silently.
type OutcomeCode string

const (
	OutcomeImported            OutcomeCode = "imported"
	OutcomeDuplicateWinner     OutcomeCode = "imported-as-duplicate-winner"
	OutcomeWarningZeroPrice    OutcomeCode = "warning-zero-price"
	OutcomeBlockedInvalidUnit  OutcomeCode = "blocked-invalid-unit"
	OutcomeRejectedWrongClass  OutcomeCode = "rejected-wrong-class"
	OutcomeRejectedUnresolved  OutcomeCode = "rejected-unresolved-code"
	OutcomeSupersededDuplicate OutcomeCode = "superseded-duplicate"
)

// Rejected reports whether the outcome excluded the row from the batch.
func (c OutcomeCode) Rejected() bool {
	switch c {
	case OutcomeRejectedWrongClass, OutcomeRejectedUnresolved, OutcomeSupersededDuplicate:
		return true
	}
	return false
}

// Outcome is one row's reconciliation verdict, with enough context to point
// back at the source spreadsheet.
type Outcome struct {
	RowNumber            int         `json:"row_number"`
	CanonicalCode        string      `json:"canonical_code"`
	Code                 OutcomeCode `json:"outcome"`
	Detail               string      `json:"detail,omitempty"`
	LowConfidenceDensity bool        `json:"low_confidence_density,omitempty"`
}
