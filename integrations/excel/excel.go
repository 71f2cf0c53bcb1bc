// Package excel exports consolidated records as a spreadsheet.
package excel

import (
	"fmt"
	"io"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "ORCR"

var Headers = []string{
	"year", "round", "type", "exam", "institute", "academicProgramName",
	"quota", "seatType", "gender", "openRank", "closeRank",
}

func row(r common.ConsolidatedRecord) []interface{} {
	return []interface{}{
		r.Year, r.Round, r.Type, r.Exam, r.Institute, r.AcademicProgramName,
		r.Quota, r.SeatType, r.Gender, r.OpenRank, r.CloseRank,
	}
}

// Build lays the records out on one sheet below a header row. Callers own the
// returned file and must Close it.
func Build(records []common.ConsolidatedRecord, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := row(r)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func Write(w io.Writer, records []common.ConsolidatedRecord, sheet string) error {
	f, err := Build(records, sheet)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func WriteFile(path string, records []common.ConsolidatedRecord, sheet string) error {
	f, err := Build(records, sheet)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
