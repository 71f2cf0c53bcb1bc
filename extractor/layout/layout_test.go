package layout

import (
	"testing"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRound1(t *testing.T) {
	row := common.RawRow{"1", "17", "All India", "AIIMS, New Delhi", "MD General Medicine", "Open", "General"}
	cols := Resolve(Round1, row)

	assert.Equal(t, "17", cols.Cell(row, Rank))
	assert.Equal(t, "All India", cols.Cell(row, Quota))
	assert.Equal(t, "AIIMS, New Delhi", cols.Cell(row, Institute))
	assert.Equal(t, "MD General Medicine", cols.Cell(row, Course))
	assert.Equal(t, "Open", cols.Cell(row, Category))
	assert.Equal(t, "General", cols.Cell(row, CandidateCategory))
	assert.False(t, cols.Has(Remarks))
}

func TestDualVariant(t *testing.T) {
	assert.Equal(t, Dual12, DualVariant(make(common.RawRow, 12)))
	assert.Equal(t, Dual11, DualVariant(make(common.RawRow, 11)))
	assert.Equal(t, Dual10, DualVariant(make(common.RawRow, 10)))
	assert.Equal(t, Keyword, DualVariant(make(common.RawRow, 13)))
	assert.Equal(t, Keyword, DualVariant(make(common.RawRow, 9)))
}

func TestResolveDual12(t *testing.T) {
	row := common.RawRow{"88", "All India", "GMC Nagpur", "MD Paediatrics", "Upgraded",
		"All India", "KEM Hospital, Mumbai", "MS Orthopaedics", "OBC", "OBC", "4", "Fresh Allotted"}
	cols := Resolve(Dual12, row)

	assert.Equal(t, "88", cols.Cell(row, Rank))
	assert.Equal(t, "All India", cols.Cell(row, Quota))
	assert.Equal(t, "KEM Hospital, Mumbai", cols.Cell(row, Institute))
	assert.Equal(t, "MS Orthopaedics", cols.Cell(row, Course))
	assert.Equal(t, "OBC", cols.Cell(row, Category))
	assert.Equal(t, "Fresh Allotted", cols.Cell(row, Remarks))
}

func TestResolveDual11SharesDual12Offsets(t *testing.T) {
	row := make(common.RawRow, 11)
	assert.Equal(t, Resolve(Dual12, make(common.RawRow, 11)), Resolve(Dual11, row))
	idx, ok := Resolve(Dual11, row).Index(Remarks)
	require.True(t, ok)
	assert.Equal(t, 10, idx)
}

func TestResolveDual10(t *testing.T) {
	row := common.RawRow{"9", "All India", "GMC Nagpur", "MD Paediatrics",
		"Deemed", "KEM Hospital, Mumbai", "MS Orthopaedics", "SC", "SC", "Fresh Allotted"}
	cols := Resolve(Dual10, row)

	assert.Equal(t, "Deemed", cols.Cell(row, Quota))
	assert.Equal(t, "KEM Hospital, Mumbai", cols.Cell(row, Institute))
	assert.Equal(t, "SC", cols.Cell(row, CandidateCategory))
	assert.Equal(t, "Fresh Allotted", cols.Cell(row, Remarks))
}

func TestResolveKeyword(t *testing.T) {
	row := common.RawRow{"5", "a", "b", "c", "d", "e", "Open Seat",
		"Govt Medical College, Kota", "MD Anaesthesia", "EWS", "EWS", "7", "Fresh Allotted"}
	cols := Resolve(Keyword, row)

	assert.Equal(t, "Open Seat", cols.Cell(row, Quota))
	assert.Equal(t, "Govt Medical College, Kota", cols.Cell(row, Institute))
	assert.Equal(t, "MD Anaesthesia", cols.Cell(row, Course))
	assert.Equal(t, "EWS", cols.Cell(row, Category))
	assert.Equal(t, "EWS", cols.Cell(row, CandidateCategory))
	assert.Equal(t, "Fresh Allotted", cols.Cell(row, Remarks))
}

func TestResolveKeyword_NotFound(t *testing.T) {
	row := common.RawRow{"5", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	cols := Resolve(Keyword, row)

	assert.False(t, cols.Has(Institute))
	assert.Equal(t, "", cols.Cell(row, Institute))
}

func TestResolveKeyword_SearchWindow(t *testing.T) {
	// Index 9 lies outside the searched window even on wide rows.
	row := common.RawRow{"5", "a", "b", "c", "d", "e", "f", "g", "h", "Medical College", "j", "k", "l", "m"}
	assert.False(t, Resolve(Keyword, row).Has(Institute))
}

func TestResolveUnknown(t *testing.T) {
	assert.Empty(t, Resolve(Unknown, common.RawRow{"1"}))
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "dual10", Dual10.String())
	assert.Equal(t, "unknown", Variant(42).String())
}
