package gateway

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"practice-reconciliation/internal/domain"
)

// readXLSX loads the first worksheet of a workbook. The first row is the
// header. Numeric cells become domain numbers using their raw, unformatted
// value; everything else is text.
func readXLSX(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	records := make([][]domain.Value, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := make([]domain.Value, len(row))
		for j, raw := range row {
			v, err := xlsxValue(f, sheet, j+1, i+2, raw)
			if err != nil {
				return nil, err
			}
			rec[j] = v
		}
		records = append(records, rec)
	}
	return newTable(rows[0], records)
}

func xlsxValue(f *excelize.File, sheet string, col, row int, raw string) (domain.Value, error) {
	v := domain.Text(raw)
	if v.IsEmpty() {
		return v, nil
	}
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return v, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return domain.Empty, err
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return domain.Empty, fmt.Errorf("failed to get type of cell %s: %w", cell, err)
	}
	// Numeric cells usually carry no explicit type attribute.
	if cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeUnset {
		return domain.Number(number), nil
	}
	return v, nil
}

// writeXLSX writes the table to a single "Sheet1" worksheet with the header
// in the first row and no index column.
func writeXLSX(w io.Writer, table *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			values[j] = cellValue(row.Get(col))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

func cellValue(v domain.Value) interface{} {
	switch v.Kind() {
	case domain.KindNumber:
		f, _ := v.Float()
		return f
	case domain.KindText:
		return v.String()
	default:
		return nil
	}
}
