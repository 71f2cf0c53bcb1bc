// Package consolidate merges allotments that share an institute, course, quota,
// seat type and gender into a single opening/closing rank range.
package consolidate

import (
	"log"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/institute"
)

const DefaultGender = "Gender-Neutral"

type Stats struct {
	Raw    int `json:"raw"`
	Unique int `json:"unique"`
	Merged int `json:"merged"`
}

type groupKey struct {
	institute string
	course    string
	quota     string
	seatType  string
	gender    string
}

// Consolidate normalizes each institute and reduces every group to its lowest and
// highest rank. Records come out in the order their group was first seen.
func Consolidate(records []common.AllotmentRecord, meta common.Meta) ([]common.ConsolidatedRecord, Stats) {
	gender := meta.Gender
	if gender == "" {
		gender = DefaultGender
	}

	index := make(map[groupKey]int)
	result := []common.ConsolidatedRecord{}

	for _, r := range records {
		key := groupKey{
			institute: institute.Extract(r.Institute),
			course:    r.Course,
			quota:     r.Quota,
			seatType:  r.Category,
			gender:    gender,
		}

		if pos, ok := index[key]; ok {
			current := &result[pos]
			current.OpenRank = min(current.OpenRank, r.Rank)
			current.CloseRank = max(current.CloseRank, r.Rank)
			continue
		}

		index[key] = len(result)
		result = append(result, common.ConsolidatedRecord{
			Year:                meta.Year,
			Round:               meta.Round,
			Type:                meta.Type,
			Exam:                meta.Exam,
			Institute:           key.institute,
			AcademicProgramName: key.course,
			Quota:               key.quota,
			SeatType:            key.seatType,
			Gender:              key.gender,
			OpenRank:            r.Rank,
			CloseRank:           r.Rank,
		})
	}

	stats := Stats{
		Raw:    len(records),
		Unique: len(result),
		Merged: len(records) - len(result),
	}
	log.Printf("🔗 Consolidated %d entries into %d, %d merged", stats.Raw, stats.Unique, stats.Merged)

	return result, stats
}
