package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/pricing/prices?material_class=BB", nil)
	p, err := ExtractPagination(r)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestExtractPaginationOffset(t *testing.T) {
	r := httptest.NewRequest("GET", "/pricing/import/batches?page=3&limit=20", nil)
	p, err := ExtractPagination(r)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestExtractPaginationRejectsBadInput(t *testing.T) {
	for _, q := range []string{"page=0", "page=abc", "limit=-5", "limit=9999"} {
		r := httptest.NewRequest("GET", "/x?"+q, nil)
		_, err := ExtractPagination(r)
		assert.Error(t, err, q)
	}
}

func TestSetPaginationStats(t *testing.T) {
	p := PaginationParams{Page: 1, Limit: 20}
	p.SetPaginationStats(45)
	assert.Equal(t, 45, p.TotalRecords)
	assert.Equal(t, 3, p.TotalPages)

	p.SetPaginationStats(0)
	assert.Equal(t, 0, p.TotalPages)
}
