// Package layout maps the positional cells of a bulletin row to logical fields.
//
// Each known table shape is a Variant; Resolve turns a variant and a row into an
// explicit Columns mapping so every shape can be tested on its own.
package layout

import (
	"strings"

	"github.com/aqlanhadi/orcr/extractor/common"
)

type Field string

const (
	Rank              Field = "rank"
	Quota             Field = "quota"
	Institute         Field = "institute"
	Course            Field = "course"
	Category          Field = "category"
	CandidateCategory Field = "candidate_category"
	Remarks           Field = "remarks"
)

// Columns maps a field to its cell index. Absent fields were not found in the row.
type Columns map[Field]int

func (c Columns) Index(f Field) (int, bool) {
	idx, ok := c[f]
	return idx, ok
}

func (c Columns) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// Cell returns the cleaned cell for f, or "" when the field was not found.
func (c Columns) Cell(row common.RawRow, f Field) string {
	idx, ok := c[f]
	if !ok {
		return ""
	}
	return row.Cell(idx)
}

type Variant int

const (
	Unknown Variant = iota
	// Round1 is the single-round bulletin: SNo, Rank, Quota, Institute, Course, Category, Candidate Category.
	Round1
	// Dual12 and Dual11 are round-2 bulletins carrying round-1 and round-2 allotments side by side.
	Dual12
	Dual11
	// Dual10 is the dual-round bulletin without the round-1 remarks column.
	Dual10
	// Keyword locates the round-2 institute by searching for institute-like words.
	Keyword
)

func (v Variant) String() string {
	switch v {
	case Round1:
		return "round1"
	case Dual12:
		return "dual12"
	case Dual11:
		return "dual11"
	case Dual10:
		return "dual10"
	case Keyword:
		return "keyword"
	}
	return "unknown"
}

// Round1MinColumns is the narrowest row a round-1 table can have.
const Round1MinColumns = 7

// DualMinColumns is the narrowest row a positional round-2 table can have.
const DualMinColumns = 10

// FallbackKeywords identify the institute cell when no positional variant fits.
var FallbackKeywords = []string{"medical", "college", "hospital"}

// DualVariant picks the round-2 variant from the row width.
func DualVariant(row common.RawRow) Variant {
	switch len(row) {
	case 12:
		return Dual12
	case 11:
		return Dual11
	case 10:
		return Dual10
	}
	return Keyword
}

// Resolve returns the field mapping for row under variant v.
func Resolve(v Variant, row common.RawRow) Columns {
	last := len(row) - 1

	switch v {
	case Round1:
		return Columns{Rank: 1, Quota: 2, Institute: 3, Course: 4, Category: 5, CandidateCategory: 6}
	case Dual12, Dual11:
		return Columns{Rank: 0, Quota: 5, Institute: 6, Course: 7, Category: 8, CandidateCategory: 9, Remarks: last}
	case Dual10:
		return Columns{Rank: 0, Quota: 4, Institute: 5, Course: 6, Category: 7, CandidateCategory: 8, Remarks: last}
	case Keyword:
		return resolveKeyword(row)
	}
	return Columns{}
}

// resolveKeyword searches the round-2 half of the row for the institute. Quota sits
// just before it; course and categories follow.
func resolveKeyword(row common.RawRow) Columns {
	cols := Columns{Rank: 0, Remarks: len(row) - 1}

	end := min(len(row)-2, 9)
	for i := 5; i < end; i++ {
		if !containsAny(strings.ToLower(row.Cell(i)), FallbackKeywords) {
			continue
		}

		cols[Institute] = i
		cols[Quota] = i - 1
		if i+1 < len(row) {
			cols[Course] = i + 1
		}
		if i+2 < len(row) {
			cols[Category] = i + 2
		}
		if i+3 < len(row) {
			cols[CandidateCategory] = i + 3
		}
		break
	}

	return cols
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
