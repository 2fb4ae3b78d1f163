package pricing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Hendyvelarius/lapiesbm-sub001/api/pricing/reconcile"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const headerScanLimit = 20

var errNoHeaderRow = errors.New("could not locate the header row (needs at least material code and price columns)")

// parseWorkbook turns the uploaded file into a string grid. Tries xlsx first,
// then legacy xls, then csv, mirroring what suppliers actually send.
func parseWorkbook(data []byte) ([][]string, string, error) {
	if xl, err := excelize.OpenReader(bytes.NewReader(data)); err == nil {
		defer xl.Close()
		sheetName := xl.GetSheetName(0)
		rows, err := xl.GetRows(sheetName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		return rows, ".xlsx", nil
	}

	if wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8"); err == nil {
		if sheet := wb.GetSheet(0); sheet != nil {
			var rows [][]string
			for i := 0; i <= int(sheet.MaxRow); i++ {
				row := sheet.Row(i)
				if row == nil {
					rows = append(rows, nil)
					continue
				}
				cells := make([]string, row.LastCol())
				for j := row.FirstCol(); j < row.LastCol(); j++ {
					cells[j] = row.Col(j)
				}
				rows = append(rows, cells)
			}
			return rows, ".xls", nil
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("file is not a readable xlsx, xls or csv: %w", err)
	}
	return rows, ".csv", nil
}

// columnMap holds the 0-based indexes of the recognized columns. Code and
// price are mandatory; the rest are -1 when the sheet does not carry them.
type columnMap struct {
	class    int
	code     int
	name     int
	unit     int
	currency int
	price    int
}

var headerAliases = map[string][]string{
	"class":    {"material_class", "class", "jenis", "jenis_bahan", "golongan", "tipe"},
	"code":     {"material_code", "code", "item_code", "kode", "kode_bahan", "kode_item"},
	"name":     {"material_name", "name", "item_name", "nama", "nama_bahan"},
	"unit":     {"unit", "uom", "purchase_unit", "satuan", "satuan_beli"},
	"currency": {"currency", "curr", "mata_uang", "valuta"},
	"price":    {"price", "unit_price", "purchase_price", "harga", "harga_beli", "harga_satuan"},
}

func normalizeHeaderCell(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = strings.TrimSuffix(s, ":")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func matchHeaderCell(cell string) (string, bool) {
	norm := normalizeHeaderCell(cell)
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if norm == alias {
				return field, true
			}
		}
	}
	return "", false
}

// findHeader scans the first rows of the sheet for a header row. Supplier
// files often start with a title block, so the header is rarely row 1.
func findHeader(rows [][]string) (columnMap, int, error) {
	for i := 0; i < len(rows) && i < headerScanLimit; i++ {
		cols := columnMap{class: -1, code: -1, name: -1, unit: -1, currency: -1, price: -1}
		for j, cell := range rows[i] {
			field, ok := matchHeaderCell(cell)
			if !ok {
				continue
			}
			switch field {
			case "class":
				cols.class = j
			case "code":
				cols.code = j
			case "name":
				cols.name = j
			case "unit":
				cols.unit = j
			case "currency":
				cols.currency = j
			case "price":
				cols.price = j
			}
		}
		if cols.code >= 0 && cols.price >= 0 {
			return cols, i, nil
		}
	}
	return columnMap{}, 0, errNoHeaderRow
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount reads a price cell. Supplier sheets mix "1,234.56" and the
// Indonesian "1234,56"; a single comma without a dot is a decimal comma,
// any other comma is a thousands separator.
func parseAmount(s string) reconcile.Price {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if clean == "" {
		return reconcile.UnsetPrice()
	}
	if strings.Count(clean, ",") == 1 && !strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return reconcile.UnsetPrice()
	}
	return reconcile.PriceFromFloat(v)
}

// sheetToRawRows converts the grid into pipeline rows. Row numbers are the
// 1-based sheet positions so outcome reports point at the real spreadsheet
// row. Blank rows are skipped. Sheets without a class column are assumed to
// contain only the declared target class.
func sheetToRawRows(rows [][]string, target reconcile.MaterialClass) ([]reconcile.RawMaterialRow, error) {
	cols, headerIdx, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.RawMaterialRow, 0, len(rows)-headerIdx-1)
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		code := cellAt(row, cols.code)
		if code == "" && rowIsBlank(row) {
			continue
		}
		if code == "" {
			// keep the row so the run reports it instead of dropping it
			code = cellAt(row, cols.name)
		}

		classLabel := cellAt(row, cols.class)
		if cols.class < 0 {
			classLabel = string(target)
		}

		out = append(out, reconcile.RawMaterialRow{
			RowNumber:     i + 1,
			ClassLabel:    classLabel,
			RawCode:       code,
			Name:          cellAt(row, cols.name),
			PurchaseUnit:  reconcile.ParseUnit(cellAt(row, cols.unit)),
			Currency:      cellAt(row, cols.currency),
			PurchasePrice: parseAmount(cellAt(row, cols.price)),
		})
	}
	return out, nil
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
