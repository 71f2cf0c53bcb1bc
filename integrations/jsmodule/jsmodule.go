// Package jsmodule writes consolidated records as the JavaScript module consumed by
// the frontend, and reads such a module back for the round-1 category lookup.
package jsmodule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aqlanhadi/orcr/extractor/common"
)

var ErrNoArray = errors.New("no record array found in module")

// Header is the comment block written above the export.
type Header struct {
	Title      string
	Generator  string
	ExportName string
	RunID      string
	// Split adds the round-2/round-1 breakdown line.
	Split         bool
	Round2Entries int
	Round1Entries int
}

// ExportName is the identifier the frontend imports, e.g. neetPgR1_2025.
func ExportName(round, year int) string {
	return fmt.Sprintf("neetPgR%d_%d", round, year)
}

// Marshal renders records as indented JSON without HTML escaping, so course names
// like "Obstetrics & Gynaecology" stay readable.
func Marshal(records []common.ConsolidatedRecord) ([]byte, error) {
	if records == nil {
		records = []common.ConsolidatedRecord{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func Write(w io.Writer, records []common.ConsolidatedRecord, h Header) error {
	body, err := Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// %s\n", h.Title)
	if h.Generator != "" {
		fmt.Fprintf(&buf, "// Generated by %s\n", h.Generator)
	}
	fmt.Fprintf(&buf, "// Total entries: %d\n", len(records))
	if h.Split {
		fmt.Fprintf(&buf, "// Round 2 data: %d, Round 1 fallback: %d\n", h.Round2Entries, h.Round1Entries)
	}
	buf.WriteString("// Duplicates consolidated with openRank/closeRank\n")
	if h.Split {
		buf.WriteString("// Note: Uses Round 2 data when available, falls back to Round 1 when R2 is absent\n")
	}
	if h.RunID != "" {
		fmt.Fprintf(&buf, "// Run: %s\n", h.RunID)
	}
	fmt.Fprintf(&buf, "\nexport const %s = ", h.ExportName)
	buf.Write(body)
	buf.WriteString(";\n")

	_, err = w.Write(buf.Bytes())
	return err
}

func WriteFile(path string, records []common.ConsolidatedRecord, h Header) error {
	return writeFile(path, func(w io.Writer) error { return Write(w, records, h) })
}

// WriteJSON writes records as a plain JSON array.
func WriteJSON(w io.Writer, records []common.ConsolidatedRecord) error {
	body, err := Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	_, err = w.Write(append(body, '\n'))
	return err
}

func WriteJSONFile(path string, records []common.ConsolidatedRecord) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, records) })
}

// WriteSample writes the first n records for a quick look at the output.
func WriteSample(path string, records []common.ConsolidatedRecord, n int) error {
	if n >= 0 && n < len(records) {
		records = records[:n]
	}
	return WriteJSONFile(path, records)
}

// Read decodes the array between the first '[' and the last ']' of a module.
func Read(r io.Reader) ([]common.ConsolidatedRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	start := bytes.IndexByte(content, '[')
	end := bytes.LastIndexByte(content, ']')
	if start == -1 || end < start {
		return nil, ErrNoArray
	}

	var records []common.ConsolidatedRecord
	if err := json.Unmarshal(content[start:end+1], &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

func ReadFile(path string) ([]common.ConsolidatedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
