package common

// RawRow is one table row as produced by the table loaders. Cells are positional
// and the column count varies between bulletin layouts.
type RawRow []string

// Table is a run of rows that share a column layout (one PDF page, one tabula table).
type Table struct {
	Source string   `json:"source"`
	Index  int      `json:"index"`
	Rows   []RawRow `json:"rows"`
}

// Columns returns the widest row length in the table.
func (t Table) Columns() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

type AllotmentRecord struct {
	Rank              int    `json:"rank"`
	Quota             string `json:"quota"`
	Institute         string `json:"institute"`
	Course            string `json:"course"`
	Category          string `json:"category"`
	CandidateCategory string `json:"candidate_category"`
	UsedRound1        bool   `json:"used_r1,omitempty"`
}

type ConsolidatedRecord struct {
	Year                int    `json:"year"`
	Round               int    `json:"round"`
	Type                string `json:"type"`
	Exam                string `json:"exam"`
	Institute           string `json:"institute"`
	AcademicProgramName string `json:"academicProgramName"`
	Quota               string `json:"quota"`
	SeatType            string `json:"seatType"`
	Gender              string `json:"gender"`
	OpenRank            int    `json:"openRank"`
	CloseRank           int    `json:"closeRank"`
}

// Meta is the fixed metadata stamped on every consolidated record of a run.
type Meta struct {
	Year   int    `json:"year"`
	Round  int    `json:"round"`
	Type   string `json:"type"`
	Exam   string `json:"exam"`
	Gender string `json:"gender"`
}

// Defaults fill in cells the bulletin leaves blank or marks with a placeholder.
type Defaults struct {
	Quota             string `json:"quota"`
	Category          string `json:"category"`
	CandidateCategory string `json:"candidate_category"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		Quota:             "All India",
		Category:          "Open",
		CandidateCategory: "General",
	}
}

// Report replaces progress narration: every dropped row is counted here instead of
// being raised to the caller.
type Report struct {
	RunID               string `json:"run_id"`
	TablesFound         int    `json:"tables_found"`
	TablesProcessed     int    `json:"tables_processed"`
	TablesSkipped       int    `json:"tables_skipped"`
	RowsProcessed       int    `json:"rows_processed"`
	RowsShort           int    `json:"rows_short"`
	RowsInvalid         int    `json:"rows_invalid"`
	RowsNoUpgrade       int    `json:"rows_no_upgrade"`
	RowsNoData          int    `json:"rows_no_data"`
	RowsKeywordFallback int    `json:"rows_keyword_fallback"`
	RowsRound2          int    `json:"rows_round2"`
	RowsRound1Fallback  int    `json:"rows_round1_fallback"`
	Entries             int    `json:"entries"`
	Consolidated        int    `json:"consolidated"`
	Merged              int    `json:"merged"`
}
