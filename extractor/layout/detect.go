package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/aqlanhadi/orcr/extractor/common"
)

var InstituteKeywords = []string{
	"medical", "college", "hospital", "institute", "university",
	"aiims", "pgimer", "jipmer", "dental", "nursing",
}

// IsLikelyInstitute reports whether a cell reads like an institute name.
func IsLikelyInstitute(text string) bool {
	if utf8.RuneCountInString(text) < 5 {
		return false
	}
	return containsAny(strings.ToLower(text), InstituteKeywords)
}

// Dual holds the round-1 and round-2 halves of a dual-round row.
type Dual struct {
	Round1 Columns
	Round2 Columns
}

// DetectDual finds the institute cells of a dual-round row by content instead of
// position. The first institute-like cell belongs to round 1 and the second to
// round 2; a lone hit in the first four columns is taken as round 1.
func DetectDual(row common.RawRow) Dual {
	dual := Dual{
		Round1: Columns{Rank: 0},
		Round2: Columns{Rank: 0},
	}

	var institutes []int
	for i := 1; i < len(row); i++ {
		if IsLikelyInstitute(row.Cell(i)) {
			institutes = append(institutes, i)
		}
	}

	switch {
	case len(institutes) >= 2:
		placeInstitute(dual.Round1, institutes[0])
		placeInstitute(dual.Round2, institutes[1])
	case len(institutes) == 1 && institutes[0] <= 3:
		placeInstitute(dual.Round1, institutes[0])
	case len(institutes) == 1:
		placeInstitute(dual.Round2, institutes[0])
	}

	if idx, ok := dual.Round1.Index(Institute); ok {
		placeTrailing(dual.Round1, idx, len(row))
		if course, ok := dual.Round1.Index(Course); ok && course+3 < len(row) {
			dual.Round1[Remarks] = course + 3
		}
	}
	if idx, ok := dual.Round2.Index(Institute); ok {
		placeTrailing(dual.Round2, idx, len(row))
		if dual.Round2.Has(Course) {
			dual.Round2[Remarks] = len(row) - 1
		}
	}

	return dual
}

func placeInstitute(cols Columns, idx int) {
	cols[Institute] = idx
	if idx > 1 {
		cols[Quota] = idx - 1
	}
}

// placeTrailing assigns course and the two category columns that follow an institute.
func placeTrailing(cols Columns, institute, width int) {
	if institute+1 >= width {
		return
	}
	course := institute + 1
	cols[Course] = course
	if course+1 < width {
		cols[Category] = course + 1
	}
	if course+2 < width {
		cols[CandidateCategory] = course + 2
	}
}
