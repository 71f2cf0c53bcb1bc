package round2

import (
	"strings"

	"github.com/aqlanhadi/orcr/extractor/common"
)

const (
	instituteKeyLength = 30
	courseKeyLength    = 20
)

type lookupKey struct {
	institute string
	course    string
	quota     string
}

type interval struct {
	open     int
	close    int
	seatType string
}

func (i interval) contains(rank int) bool {
	return rank >= i.open && rank <= i.close
}

// Lookup recovers the round-1 seat type of a candidate who kept their round-1 seat.
// It is built from the consolidated round-1 records, so a candidate is matched when
// their rank falls inside a record's opening/closing range.
type Lookup struct {
	exact    intervalIndex
	byQuota  map[string][]interval
	defaults common.Defaults
	records  int
}

func NewLookup(records []common.ConsolidatedRecord, defaults common.Defaults) *Lookup {
	l := &Lookup{
		exact:    make(intervalIndex),
		byQuota:  make(map[string][]interval),
		defaults: defaults,
	}

	for _, r := range records {
		quota := r.Quota
		if quota == "" {
			quota = defaults.Quota
		}
		key := lookupKey{institute: normalizeKey(r.Institute), course: normalizeKey(r.AcademicProgramName), quota: quota}
		span := interval{open: r.OpenRank, close: r.CloseRank, seatType: r.SeatType}

		l.exact[key] = append(l.exact[key], span)
		l.byQuota[quota] = append(l.byQuota[quota], span)
		l.records++
	}

	return l
}

// Len returns the number of round-1 records the lookup was built from.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return l.records
}

// Category returns the allotted and candidate category for a round-1 allotment.
// Candidates are matched on rank, institute, course and quota, then on a 30 character
// institute prefix, then on a 20 character course prefix, and finally on any record
// with the same rank and quota. Without a match the defaults apply. The last step can
// attach the category of another institute sharing the rank and quota.
func (l *Lookup) Category(rank int, institute, course, quota string) (string, string) {
	if l.Len() == 0 {
		return l.fallback()
	}

	inst := normalizeKey(institute)
	crs := normalizeKey(course)

	if seat, ok := l.exact.find(lookupKey{inst, crs, quota}, rank); ok {
		return seat, seat
	}
	if short, cut := truncate(inst, instituteKeyLength); cut {
		if seat, ok := l.exact.find(lookupKey{short, crs, quota}, rank); ok {
			return seat, seat
		}
	}
	if short, cut := truncate(crs, courseKeyLength); cut {
		if seat, ok := l.exact.find(lookupKey{inst, short, quota}, rank); ok {
			return seat, seat
		}
	}
	for _, span := range l.byQuota[quota] {
		if span.contains(rank) {
			return span.seatType, span.seatType
		}
	}

	return l.fallback()
}

func (l *Lookup) fallback() (string, string) {
	if l == nil {
		d := common.DefaultDefaults()
		return d.Category, d.CandidateCategory
	}
	return l.defaults.Category, l.defaults.CandidateCategory
}

type intervalIndex map[lookupKey][]interval

// find returns the most recently added interval holding rank.
func (idx intervalIndex) find(key lookupKey, rank int) (string, bool) {
	spans := idx[key]
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].contains(rank) {
			return spans[i].seatType, true
		}
	}
	return "", false
}

func normalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func truncate(text string, n int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= n {
		return text, false
	}
	return string(runes[:n]), true
}
