package common

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/xuri/excelize/v2"
)

// LoadOptions tunes how text fragments of a PDF row are grouped into cells.
type LoadOptions struct {
	// CellGap is the horizontal gap, in points, that starts a new cell.
	CellGap float64
	// WordGap is the gap, as a fraction of the font size, that inserts a space inside a cell.
	WordGap float64
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{CellGap: 8, WordGap: 0.15}
}

var ErrUnsupportedFormat = errors.New("unsupported input format")

// LoadTables dispatches on the file extension: .pdf, .json (tabula JSON or nested
// arrays), .csv or .xlsx.
func LoadTables(reader io.Reader, filename string, opts LoadOptions) ([]Table, error) {
	source := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return LoadPDFTables(reader, source, opts)
	case ".json":
		return LoadJSONTables(reader, source)
	case ".csv":
		return LoadCSVTables(reader, source)
	case ".xlsx":
		return LoadXLSXTables(reader, source)
	}
	return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
}

func LoadTablesFromFile(path string, opts LoadOptions) ([]Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadTables(file, path, opts)
}

// LoadPDFTables reads every page as one table. Rows come from the PDF text rows,
// cells are split wherever the horizontal gap between fragments exceeds opts.CellGap.
func LoadPDFTables(reader io.Reader, source string, opts LoadOptions) ([]Table, error) {
	// Ensure we have an io.ReaderAt and know the size
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		if seeker, ok := reader.(io.Seeker); ok {
			cur, _ := seeker.Seek(0, io.SeekCurrent)
			end, _ := seeker.Seek(0, io.SeekEnd)
			seeker.Seek(cur, io.SeekStart)
			size = end
		} else {
			return nil, errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
		}
	default:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return nil, err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := r.NumPage()
	tables := make([]Table, 0, numPages)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Warning: error getting text from page %d: %v", no, err)
			continue
		}

		table := Table{Source: source, Index: no - 1}
		for _, row := range rows {
			cells := splitCells(row.Content, opts)
			if len(cells) > 0 {
				table.Rows = append(table.Rows, cells)
			}
		}
		tables = append(tables, table)
	}

	return tables, nil
}

func splitCells(content []pdf.Text, opts LoadOptions) RawRow {
	var cells RawRow
	var builder strings.Builder
	var prevEnd float64

	flush := func() {
		if cell := CleanCell(builder.String()); cell != "" {
			cells = append(cells, cell)
		}
		builder.Reset()
	}

	for i, text := range content {
		if i > 0 {
			gap := text.X - prevEnd
			switch {
			case gap > opts.CellGap:
				flush()
			case gap > text.FontSize*opts.WordGap:
				builder.WriteByte(' ')
			}
		}
		builder.WriteString(text.S)
		prevEnd = text.X + text.W
	}
	flush()

	return cells
}

type tabulaTable struct {
	Data [][]json.RawMessage `json:"data"`
}

// LoadJSONTables accepts tabula's JSON output (an array of {"data": [[{"text": ...}]]})
// or plain nested arrays of tables, rows and cells.
func LoadJSONTables(reader io.Reader, source string) ([]Table, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	tables := make([]Table, 0, len(raw))
	for idx, item := range raw {
		var rows [][]json.RawMessage

		trimmed := bytes.TrimSpace(item)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var t tabulaTable
			if err := json.Unmarshal(item, &t); err != nil {
				return nil, fmt.Errorf("table %d: %w", idx, err)
			}
			rows = t.Data
		} else if err := json.Unmarshal(item, &rows); err != nil {
			return nil, fmt.Errorf("table %d: %w", idx, err)
		}

		table := Table{Source: source, Index: idx}
		for _, row := range rows {
			cells := make(RawRow, 0, len(row))
			for _, cell := range row {
				cells = append(cells, decodeCell(cell))
			}
			table.Rows = append(table.Rows, cells)
		}
		tables = append(tables, table)
	}

	return tables, nil
}

func decodeCell(raw json.RawMessage) string {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return CleanCell(v)
	case json.Number:
		text, err := CleanNumber(v.String())
		if err != nil {
			return v.String()
		}
		return text
	case bool:
		return fmt.Sprint(v)
	case map[string]interface{}:
		if text, ok := v["text"].(string); ok {
			return CleanCell(text)
		}
	}
	return ""
}

// LoadCSVTables reads a CSV export as a single table. Ragged rows are allowed.
func LoadCSVTables(reader io.Reader, source string) ([]Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	table := Table{Source: source}
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := make(RawRow, len(record))
		for i, cell := range record {
			row[i] = CleanCell(cell)
		}
		table.Rows = append(table.Rows, row)
	}

	return []Table{table}, nil
}

// LoadXLSXTables reads every sheet of a workbook as one table.
func LoadXLSXTables(reader io.Reader, source string) ([]Table, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	tables := make([]Table, 0, len(sheets))
	for idx, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}

		table := Table{Source: source, Index: idx}
		for _, record := range rows {
			row := make(RawRow, len(record))
			for i, cell := range record {
				row[i] = CleanCell(cell)
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}

	return tables, nil
}
