package reconcile

// Group is the set of source rows that share one canonical code. Rows keep
// their relative sheet order; a group with more than one row is a duplicate
// that needs reconciliation.
type Group struct {
	Key  string
	Rows []ResolvedRow
}

func (g Group) Duplicate() bool {
	return len(g.Rows) > 1
}

// GroupByCanonicalCode partitions rows by canonical code. Group keys appear
// in first-seen order and rows stay in their original order within a group.
func GroupByCanonicalCode(rows []ResolvedRow) []Group {
	index := make(map[string]int, len(rows))
	groups := make([]Group, 0, len(rows))
	for _, row := range rows {
		i, ok := index[row.CanonicalCode]
		if !ok {
			i = len(groups)
			index[row.CanonicalCode] = i
			groups = append(groups, Group{Key: row.CanonicalCode})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}
