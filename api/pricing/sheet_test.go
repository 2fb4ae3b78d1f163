package pricing

import (
	"bytes"
	"testing"

	"github.com/Hendyvelarius/lapiesbm-sub001/api/pricing/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		known bool
		value float64
	}{
		"1500":      {true, 1500},
		"1,234.56":  {true, 1234.56},
		"1234,56":   {true, 1234.56},
		"1,234,500": {true, 1234500},
		" 95000 ":   {true, 95000},
		"":          {false, 0},
		"n/a":       {false, 0},
		"-25":       {true, -25},
	}
	for in, want := range cases {
		p := parseAmount(in)
		assert.Equal(t, want.known, p.Known(), "input %q", in)
		if want.known {
			f, _ := p.Value().Float64()
			assert.InDelta(t, want.value, f, 1e-9, "input %q", in)
		}
	}
}

func TestFindHeaderSkipsTitleBlock(t *testing.T) {
	grid := [][]string{
		{"PT Lapi Laboratories"},
		{"Daftar Harga Bahan Baku", ""},
		{},
		{"Kode", "Nama Bahan", "Satuan", "Mata Uang", "Harga"},
		{"100.000", "Parasetamol", "KG", "IDR", "95000"},
	}
	cols, idx, err := findHeader(grid)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 0, cols.code)
	assert.Equal(t, 1, cols.name)
	assert.Equal(t, 2, cols.unit)
	assert.Equal(t, 3, cols.currency)
	assert.Equal(t, 4, cols.price)
	assert.Equal(t, -1, cols.class)
}

func TestFindHeaderMissing(t *testing.T) {
	_, _, err := findHeader([][]string{{"just", "some", "cells"}})
	require.ErrorIs(t, err, errNoHeaderRow)
}

func TestSheetToRawRows(t *testing.T) {
	grid := [][]string{
		{"material_class", "material_code", "material_name", "unit", "currency", "price"},
		{"BB", "100.000", "Parasetamol", "KG", "USD", "10"},
		{},
		{"BB", "100.001", "Parasetamol Cina", "KG", "IDR", "95,000"},
		{"BB", "300", "Amilum", "", "IDR", ""},
	}
	rows, err := sheetToRawRows(grid, reconcile.ClassRaw)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 1-based sheet positions survive the blank row
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, 4, rows[1].RowNumber)
	assert.Equal(t, 5, rows[2].RowNumber)

	assert.Equal(t, "100.000", rows[0].RawCode)
	assert.Equal(t, "USD", rows[0].Currency)
	assert.True(t, rows[0].PurchasePrice.Known())

	assert.True(t, rows[1].PurchasePrice.Known())
	f, _ := rows[1].PurchasePrice.Value().Float64()
	assert.InDelta(t, 95000, f, 1e-9)

	assert.False(t, rows[2].PurchaseUnit.Valid())
	assert.False(t, rows[2].PurchasePrice.Known())
}

func TestSheetToRawRowsDefaultsClass(t *testing.T) {
	grid := [][]string{
		{"kode", "harga"},
		{"100", "5000"},
	}
	rows, err := sheetToRawRows(grid, reconcile.ClassPackaging)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BK", rows[0].ClassLabel)
}

func TestParseWorkbookCSV(t *testing.T) {
	data := []byte("kode,satuan,harga\n100,KG,5000\n200,L,7500\n")
	grid, format, err := parseWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, ".csv", format)
	require.Len(t, grid, 3)
	assert.Equal(t, "100", grid[1][0])
}

func TestParseWorkbookXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"kode", "satuan", "harga"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"100.000", "KG", 95000}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	grid, format, err := parseWorkbook(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", format)
	require.GreaterOrEqual(t, len(grid), 2)
	assert.Equal(t, "100.000", grid[1][0])
}

func TestParseWorkbookGarbage(t *testing.T) {
	_, _, err := parseWorkbook([]byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00, 0x22, 0x10})
	require.Error(t, err)
}
