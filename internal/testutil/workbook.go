// Package testutil builds document fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SheetFixture is one worksheet to write, in order.
type SheetFixture struct {
	Name string
	Rows [][]string
}

// Workbook returns the bytes of an .xlsx file holding sheets in the given order.
func Workbook(t testing.TB, sheets ...SheetFixture) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			require.NoError(t, err)
		}
		for r, row := range sheet.Rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet.Name, cell, value))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// RFPWorkbook is the two-sheet security/pricing questionnaire used across tests.
func RFPWorkbook(t testing.TB) []byte {
	return Workbook(t,
		SheetFixture{Name: "Security", Rows: [][]string{
			{"Question"},
			{"Describe your encryption approach for data at rest"},
		}},
		SheetFixture{Name: "Pricing", Rows: [][]string{
			{"What is your annual license fee structure?"},
		}},
	)
}
