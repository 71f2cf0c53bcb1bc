package round2

import (
	"testing"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Synthetic dual-round listing covering every positional layout and drop reason.
func getTestTablesPositional() []common.Table {
	return []common.Table{
		{
			Source: "neet_pg_r2",
			Rows: []common.RawRow{
				{"Rank", "R1 Quota", "R1 Institute", "R1 Course", "R1 Remarks", "R2 Quota", "R2 Institute", "R2 Course", "Allotted Category", "Candidate Category", "Option No.", "Remarks"},
				{"88", "All India", "GMC Nagpur", "MD Paediatrics", "Upgraded", "All India", "KEM Hospital, Mumbai", "MS Orthopaedics", "OBC", "OBC", "4", "Fresh Allotted"},
				{"89", "All India", "GMC Nagpur", "MD Paediatrics", "-", "-", "-", "-", "-", "-", "-", "Did not opt for Upgradation"},
				{"90", "All India", "GMC Nagpur", "MD Paediatrics", "-", "-", "-", "-", "-", "-", "-", "-"},
				{"91", "All India", "GMC Nagpur", "MD Paediatrics", "Deemed", "JIPMER, Puducherry", "MD Medicine", "-", "", "Upgraded"},
				{"92", "a", "b", "c", "d", "e", "Open Seat", "Govt Medical College, Kota", "MD Anaesthesia", "EWS", "EWS", "7", "Fresh Allotted"},
				{"93", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "Fresh Allotted"},
				{"94", "All India", "GMC Nagpur"},
				{"x", "All India", "GMC Nagpur", "MD Paediatrics", "-", "All India", "KEM Hospital", "MS Orthopaedics", "OBC", "OBC", "4", "Fresh Allotted"},
				{"95", "All India", "GMC Nagpur", "MD Paediatrics", "-", "All India", "--", "MS Orthopaedics", "OBC", "OBC", "Fresh Allotted"},
			},
		},
	}
}

func TestExtractPositional(t *testing.T) {
	records, report := Extract(getTestTablesPositional(), Options{Strategy: Positional, Defaults: common.DefaultDefaults()})

	require.Len(t, records, 3)

	assert.Equal(t, common.AllotmentRecord{
		Rank: 88, Quota: "All India", Institute: "KEM Hospital, Mumbai", Course: "MS Orthopaedics",
		Category: "OBC", CandidateCategory: "OBC",
	}, records[0])

	assert.Equal(t, common.AllotmentRecord{
		Rank: 91, Quota: "Deemed", Institute: "JIPMER, Puducherry", Course: "MD Medicine",
		Category: "Open", CandidateCategory: "General",
	}, records[1])

	assert.Equal(t, "Govt Medical College, Kota", records[2].Institute)
	assert.Equal(t, "Open Seat", records[2].Quota)

	assert.Equal(t, 9, report.RowsProcessed)
	assert.Equal(t, 1, report.RowsNoUpgrade)
	assert.Equal(t, 1, report.RowsShort)
	assert.Equal(t, 4, report.RowsInvalid)
	assert.Equal(t, 1, report.RowsKeywordFallback)
	assert.Equal(t, 3, report.RowsRound2)
	assert.Equal(t, 3, report.Entries)
}

func TestExtractPositional_SkipsNarrowTables(t *testing.T) {
	tables := []common.Table{
		{Rows: []common.RawRow{{"1", "All India", "GMC Nagpur", "MD Pathology", "OBC", "OBC", "Fresh Allotted"}}},
	}

	records, report := Extract(tables, Options{Defaults: common.DefaultDefaults()})

	assert.Empty(t, records)
	assert.Equal(t, 1, report.TablesSkipped)
	assert.Equal(t, 0, report.TablesProcessed)
}

func getTestTablesSmart() []common.Table {
	return []common.Table{
		{
			Source: "neet_pg_r2",
			Rows: []common.RawRow{
				{"Rank", "Quota", "Institute", "Course"},
				{"101", "All India", "AIIMS New Delhi", "MD Medicine", "Open", "General", "Fresh",
					"All India", "JIPMER Puducherry", "MS Surgery", "OBC", "OBC", "3", "Upgraded"},
				{"120", "All India", "GMC Nagpur Medical", "MD Pathology", "OBC", "OBC", "-",
					"All India", "Grant Medical College", "MD Radiology", "SC", "SC", "-", "Did not opt for Upgradation"},
				{"15", "All India", "Maulana Azad Medical College", "MD Radiology", "-", "-", "-", "-"},
				{"5", "a", "b", "c", "d", "e"},
				{"6", "All India", "Govt Medical College Kota", "-", "x"},
				{"7", "a", "b"},
			},
		},
	}
}

func TestExtractSmart(t *testing.T) {
	lookup := NewLookup([]common.ConsolidatedRecord{
		{Institute: "GMC Nagpur Medical", AcademicProgramName: "MD Pathology", Quota: "All India", SeatType: "OBC", OpenRank: 100, CloseRank: 200},
	}, common.DefaultDefaults())

	records, report := Extract(getTestTablesSmart(), Options{Strategy: Smart, Lookup: lookup, Defaults: common.DefaultDefaults()})

	require.Len(t, records, 3)

	assert.Equal(t, "JIPMER Puducherry", records[0].Institute)
	assert.Equal(t, "OBC", records[0].Category)
	assert.False(t, records[0].UsedRound1)

	assert.Equal(t, "GMC Nagpur Medical", records[1].Institute)
	assert.Equal(t, "OBC", records[1].Category)
	assert.Equal(t, "OBC", records[1].CandidateCategory)
	assert.True(t, records[1].UsedRound1)

	assert.Equal(t, "Maulana Azad Medical College", records[2].Institute)
	assert.Equal(t, "Open", records[2].Category)
	assert.Equal(t, "General", records[2].CandidateCategory)
	assert.True(t, records[2].UsedRound1)

	assert.Equal(t, 1, report.RowsRound2)
	assert.Equal(t, 2, report.RowsRound1Fallback)
	assert.Equal(t, 1, report.RowsNoData)
	assert.Equal(t, 1, report.RowsInvalid)
	assert.Equal(t, 1, report.RowsShort)
}

func TestExtractSmart_WithoutLookup(t *testing.T) {
	records, _ := Extract(getTestTablesSmart(), Options{Strategy: Smart, Defaults: common.DefaultDefaults()})

	require.Len(t, records, 3)
	assert.Equal(t, "Open", records[1].Category)
	assert.Equal(t, "General", records[1].CandidateCategory)
}

func TestParsePositional_Variant(t *testing.T) {
	row := common.RawRow{"9", "All India", "GMC Nagpur", "MD Paediatrics",
		"Deemed", "KEM Hospital, Mumbai", "MS Orthopaedics", "SC", "SC", "Fresh Allotted"}

	record, variant, outcome := ParsePositional(row, common.DefaultDefaults())

	assert.Equal(t, Accepted, outcome)
	assert.Equal(t, layout.Dual10, variant)
	assert.Equal(t, "SC", record.CandidateCategory)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("SMART")
	require.NoError(t, err)
	assert.Equal(t, Smart, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, Positional, s)

	_, err = ParseStrategy("guess")
	assert.Error(t, err)
}

func TestIsNoUpgrade(t *testing.T) {
	assert.True(t, IsNoUpgrade("Did not opt for Upgradation"))
	assert.True(t, IsNoUpgrade("NOT OPTED"))
	assert.False(t, IsNoUpgrade("Fresh Allotted"))
}
