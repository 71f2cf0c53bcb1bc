package round2

import (
	"testing"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/stretchr/testify/assert"
)

func getTestRound1Records() []common.ConsolidatedRecord {
	return []common.ConsolidatedRecord{
		{Institute: "Maulana Azad Medical College B", AcademicProgramName: "MD Radiology", Quota: "All India", SeatType: "Open", OpenRank: 10, CloseRank: 20},
		{Institute: "Grant Medical College", AcademicProgramName: "MD Obstetrics and Gy", Quota: "All India", SeatType: "SC", OpenRank: 30, CloseRank: 40},
		{Institute: "GMC Nagpur", AcademicProgramName: "MD Pathology", Quota: "All India", SeatType: "OBC", OpenRank: 100, CloseRank: 200},
		{Institute: "GMC Nagpur", AcademicProgramName: "MD Pathology", Quota: "All India", SeatType: "EWS", OpenRank: 150, CloseRank: 160},
	}
}

func TestLookup_Exact(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	category, candidate := lookup.Category(120, " gmc nagpur ", "MD PATHOLOGY", "All India")
	assert.Equal(t, "OBC", category)
	assert.Equal(t, "OBC", candidate)
}

func TestLookup_LaterRecordWinsOnOverlap(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	category, _ := lookup.Category(155, "GMC Nagpur", "MD Pathology", "All India")
	assert.Equal(t, "EWS", category)
}

func TestLookup_TruncatedInstitute(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	category, _ := lookup.Category(15, "Maulana Azad Medical College Bhopal", "MD Radiology", "All India")
	assert.Equal(t, "Open", category)
}

func TestLookup_TruncatedCourse(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	category, _ := lookup.Category(35, "Grant Medical College", "MD Obstetrics and Gynaecology", "All India")
	assert.Equal(t, "SC", category)
}

func TestLookup_AnyRecordWithRankAndQuota(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	// Falls through to the first record whose range holds the rank.
	category, candidate := lookup.Category(155, "Unlisted Institute", "MS Surgery", "All India")
	assert.Equal(t, "OBC", category)
	assert.Equal(t, "OBC", candidate)
}

func TestLookup_NoMatch(t *testing.T) {
	lookup := NewLookup(getTestRound1Records(), common.DefaultDefaults())

	category, candidate := lookup.Category(155, "GMC Nagpur", "MD Pathology", "Deemed")
	assert.Equal(t, "Open", category)
	assert.Equal(t, "General", candidate)

	category, _ = lookup.Category(999, "GMC Nagpur", "MD Pathology", "All India")
	assert.Equal(t, "Open", category)
}

func TestLookup_EmptyUsesDefaults(t *testing.T) {
	lookup := NewLookup(nil, common.Defaults{Category: "UR", CandidateCategory: "GN"})

	category, candidate := lookup.Category(1, "a", "b", "c")
	assert.Equal(t, "UR", category)
	assert.Equal(t, "GN", candidate)
}

func TestLookup_Nil(t *testing.T) {
	var lookup *Lookup

	assert.Equal(t, 0, lookup.Len())
	category, candidate := lookup.Category(1, "a", "b", "c")
	assert.Equal(t, "Open", category)
	assert.Equal(t, "General", candidate)
}

func TestLookup_BlankQuotaTreatedAsDefault(t *testing.T) {
	records := []common.ConsolidatedRecord{
		{Institute: "GMC Kota", AcademicProgramName: "MD Anaesthesia", SeatType: "ST", OpenRank: 1, CloseRank: 5},
	}
	lookup := NewLookup(records, common.DefaultDefaults())

	category, _ := lookup.Category(3, "GMC Kota", "MD Anaesthesia", "All India")
	assert.Equal(t, "ST", category)
	assert.Equal(t, 1, lookup.Len())
}
