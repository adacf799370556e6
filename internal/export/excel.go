// Package export renders a register's current displayed values as a
// spreadsheet or a standalone printable document. Both collaborators
// consume the same shape: a header row plus row-value string arrays; they
// never see Record internals.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opsdesk/registerdesk/pkg/types"
)

// FileName builds the export file name for a register:
// <prefix>_export_<ISO-date>.xlsx.
func FileName(s types.Schema, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.xlsx", s.ExportPrefix, now.Format("2006-01-02"))
}

// Excel writes the register snapshot as a spreadsheet into dir and returns
// the full path. Returns ErrNoRows for an empty register so the caller can
// surface the rejection to the user.
func Excel(s types.Schema, rows [][]string, dir string, now time.Time) (string, error) {
	if len(rows) == 0 {
		return "", types.ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, s.Header()); err != nil {
		return "", err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	for i, width := range s.ColumnWidths() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("resolving column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return "", fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	path := filepath.Join(dir, FileName(s, now))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

// writeRow sets one worksheet row from a string slice.
func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolving row %d: %w", rowNum, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}
