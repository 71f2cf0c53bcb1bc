package round1

import (
	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/layout"
)

var headerMarkers = []string{"Rank", "SNo"}

// IsHeader reports whether row is the column header of a round-1 table.
func IsHeader(row common.RawRow) bool {
	return row.ContainsAny(headerMarkers...)
}

// ParseRow reads one round-1 allotment. ok is false when the row is too short or the
// rank cell is not a positive integer; short tells the two apart.
func ParseRow(row common.RawRow) (record common.AllotmentRecord, short bool, ok bool) {
	if len(row) < layout.Round1MinColumns {
		return record, true, false
	}

	cols := layout.Resolve(layout.Round1, row)

	rank, valid := common.ParseRank(cols.Cell(row, layout.Rank))
	if !valid {
		return record, false, false
	}

	return common.AllotmentRecord{
		Rank:              rank,
		Quota:             cols.Cell(row, layout.Quota),
		Institute:         cols.Cell(row, layout.Institute),
		Course:            cols.Cell(row, layout.Course),
		Category:          cols.Cell(row, layout.Category),
		CandidateCategory: cols.Cell(row, layout.CandidateCategory),
	}, false, true
}
