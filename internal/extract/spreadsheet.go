package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// xlsxExtractor reads Office Open XML workbooks.
type xlsxExtractor struct{}

func (xlsxExtractor) Extract(data []byte) (content *Content, err error) {
	defer recoverDecoder("xlsx", &err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, extractionError("xlsx", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, extractionError("xlsx", fmt.Errorf("sheet %q: %w", name, err))
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return tableContent(sheets), nil
}

// xlsExtractor reads legacy BIFF (.xls) workbooks.
type xlsExtractor struct{}

func (xlsExtractor) Extract(data []byte) (content *Content, err error) {
	defer recoverDecoder("xls", &err)

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, extractionError("xls", err)
	}
	// OpenReader reports no error for a compound file without a workbook stream.
	if wb == nil {
		return nil, extractionError("xls", errors.New("no workbook stream"))
	}

	sheets := make([]Sheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			rows = append(rows, xlsRowCells(sheetRow(ws, r)))
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: rows})
	}
	return tableContent(sheets), nil
}

// sheetRow returns nil for rows with no cells. WorkSheet.Row dereferences the
// missing entry instead of returning nil.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// xlsRowCells reads cells up to the row's last column. Rows written without a
// ROW record report no columns, so the first cell is always read.
func xlsRowCells(row *xls.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, max(row.LastCol(), 1))
	for c := range cells {
		cells[c] = row.Col(c)
	}
	return cells
}
