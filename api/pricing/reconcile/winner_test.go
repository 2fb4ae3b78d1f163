package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normRow(rowNum int, normalized int64) NormalizedPriceRow {
	return NormalizedPriceRow{
		ResolvedRow: ResolvedRow{
			NormalizedMaterialRow: NormalizedMaterialRow{
				RawMaterialRow: RawMaterialRow{RowNumber: rowNum},
				CanonicalCode:  "X",
			},
		},
		NormalizedPrice: decimal.NewFromInt(normalized),
	}
}

func TestPickWinnerHighestNormalizedPrice(t *testing.T) {
	winner, losers := PickWinner([]NormalizedPriceRow{
		normRow(2, 95000),
		normRow(3, 150000),
		normRow(4, 120000),
	})
	assert.Equal(t, 3, winner.RowNumber)
	require.Len(t, losers, 2)
	for _, loser := range losers {
		assert.True(t, winner.NormalizedPrice.GreaterThanOrEqual(loser.NormalizedPrice))
	}
}

func TestPickWinnerTieKeepsEarliestRow(t *testing.T) {
	winner, losers := PickWinner([]NormalizedPriceRow{
		normRow(5, 1000),
		normRow(7, 1000),
		normRow(9, 1000),
	})
	assert.Equal(t, 5, winner.RowNumber)
	assert.Len(t, losers, 2)
}

func TestPickWinnerSingleton(t *testing.T) {
	winner, losers := PickWinner([]NormalizedPriceRow{normRow(2, 42)})
	assert.Equal(t, 2, winner.RowNumber)
	assert.Empty(t, losers)
}
