package reconcile

// PickWinner selects the representative row of a duplicate group: the row
// with the strictly greatest normalized price. Ties keep the earliest row,
// so selection is deterministic for identical inputs. The slice must be in
// source order and non-empty.
func PickWinner(rows []NormalizedPriceRow) (NormalizedPriceRow, []NormalizedPriceRow) {
	winnerIdx := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].NormalizedPrice.GreaterThan(rows[winnerIdx].NormalizedPrice) {
			winnerIdx = i
		}
	}
	losers := make([]NormalizedPriceRow, 0, len(rows)-1)
	for i, row := range rows {
		if i != winnerIdx {
			losers = append(losers, row)
		}
	}
	return rows[winnerIdx], losers
}
