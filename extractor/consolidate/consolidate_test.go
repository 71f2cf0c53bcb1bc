package consolidate

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestMeta() common.Meta {
	return common.Meta{Year: 2025, Round: 1, Type: "NEET_PG", Exam: "NEET_PG", Gender: "Gender-Neutral"}
}

func getTestAllotments() []common.AllotmentRecord {
	return []common.AllotmentRecord{
		{Rank: 40, Quota: "All India", Institute: "GMC, Nagpur, Maharashtra, 440003", Course: "MD Pathology", Category: "Open"},
		{Rank: 12, Quota: "All India", Institute: "GMC, Nagpur, Maharashtra", Course: "MD Pathology", Category: "Open"},
		{Rank: 77, Quota: "All India", Institute: "GMC, Nagpur", Course: "MD Pathology", Category: "Open"},
		{Rank: 55, Quota: "All India", Institute: "GMC, Nagpur", Course: "MD Pathology", Category: "OBC"},
		{Rank: 9, Quota: "Deemed", Institute: "GMC, Nagpur", Course: "MD Pathology", Category: "Open"},
		{Rank: 3, Quota: "All India", Institute: "AIIMS, New Delhi, Delhi (NCT)", Course: "MD Medicine", Category: "Open"},
	}
}

func TestConsolidate_MinMax(t *testing.T) {
	records, stats := Consolidate(getTestAllotments(), getTestMeta())

	require.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "GMC, Nagpur", first.Institute)
	assert.Equal(t, 12, first.OpenRank)
	assert.Equal(t, 77, first.CloseRank)

	assert.Equal(t, Stats{Raw: 6, Unique: 4, Merged: 2}, stats)
}

func TestConsolidate_FirstSeenOrder(t *testing.T) {
	records, _ := Consolidate(getTestAllotments(), getTestMeta())

	assert.Equal(t, "Open", records[0].SeatType)
	assert.Equal(t, "OBC", records[1].SeatType)
	assert.Equal(t, "Deemed", records[2].Quota)
	assert.Equal(t, "AIIMS, New Delhi", records[3].Institute)
}

func TestConsolidate_StampsMeta(t *testing.T) {
	records, _ := Consolidate(getTestAllotments()[:1], getTestMeta())

	assert.Equal(t, common.ConsolidatedRecord{
		Year:                2025,
		Round:               1,
		Type:                "NEET_PG",
		Exam:                "NEET_PG",
		Institute:           "GMC, Nagpur",
		AcademicProgramName: "MD Pathology",
		Quota:               "All India",
		SeatType:            "Open",
		Gender:              "Gender-Neutral",
		OpenRank:            40,
		CloseRank:           40,
	}, records[0])
}

func TestConsolidate_DefaultGender(t *testing.T) {
	records, _ := Consolidate(getTestAllotments()[:1], common.Meta{Year: 2025, Round: 2})
	assert.Equal(t, DefaultGender, records[0].Gender)
}

func TestConsolidate_Empty(t *testing.T) {
	records, stats := Consolidate(nil, getTestMeta())

	assert.Empty(t, records)
	assert.Equal(t, Stats{}, stats)
}

func TestConsolidate_OrderIndependent(t *testing.T) {
	want, _ := Consolidate(getTestAllotments(), getTestMeta())
	sortRecords(want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := getTestAllotments()
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, _ := Consolidate(shuffled, getTestMeta())
		sortRecords(got)
		assert.Equal(t, want, got)
	}
}

func TestConsolidate_UniqueKeys(t *testing.T) {
	records, _ := Consolidate(getTestAllotments(), getTestMeta())

	seen := make(map[groupKey]bool)
	for _, r := range records {
		key := groupKey{r.Institute, r.AcademicProgramName, r.Quota, r.SeatType, r.Gender}
		assert.False(t, seen[key], "duplicate key %+v", key)
		seen[key] = true
		assert.LessOrEqual(t, r.OpenRank, r.CloseRank)
	}
}

func sortRecords(records []common.ConsolidatedRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Institute != b.Institute {
			return a.Institute < b.Institute
		}
		if a.AcademicProgramName != b.AcademicProgramName {
			return a.AcademicProgramName < b.AcademicProgramName
		}
		if a.Quota != b.Quota {
			return a.Quota < b.Quota
		}
		return a.SeatType < b.SeatType
	})
}
