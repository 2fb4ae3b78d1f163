package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedRow(rowNum int, rawCode string) ResolvedRow {
	canonical := CanonicalCode(rawCode)
	return ResolvedRow{
		NormalizedMaterialRow: NormalizedMaterialRow{
			RawMaterialRow: RawMaterialRow{RowNumber: rowNum, RawCode: rawCode},
			OriginalCode:   rawCode,
			CanonicalCode:  canonical,
		},
		Entry: CatalogEntry{Code: canonical, Class: ClassRaw, BaseUnit: "KG"},
	}
}

func TestGroupByCanonicalCodeSuffixVariants(t *testing.T) {
	// two supplier variants of material 100 collapse into one group
	rows := []ResolvedRow{
		resolvedRow(2, "100.000"),
		resolvedRow(3, "200.000"),
		resolvedRow(4, "100.001"),
	}

	groups := GroupByCanonicalCode(rows)
	require.Len(t, groups, 2)

	assert.Equal(t, "100", groups[0].Key)
	assert.True(t, groups[0].Duplicate())
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, 2, groups[0].Rows[0].RowNumber)
	assert.Equal(t, 4, groups[0].Rows[1].RowNumber)

	assert.Equal(t, "200", groups[1].Key)
	assert.False(t, groups[1].Duplicate())
}

func TestGroupByCanonicalCodeKeepsFirstSeenKeyOrder(t *testing.T) {
	rows := []ResolvedRow{
		resolvedRow(2, "B.000"),
		resolvedRow(3, "A.000"),
		resolvedRow(4, "B.001"),
		resolvedRow(5, "C"),
	}
	groups := GroupByCanonicalCode(rows)
	require.Len(t, groups, 3)
	assert.Equal(t, "B", groups[0].Key)
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, "C", groups[2].Key)
}

func TestGroupByCanonicalCodeEmpty(t *testing.T) {
	assert.Empty(t, GroupByCanonicalCode(nil))
}
