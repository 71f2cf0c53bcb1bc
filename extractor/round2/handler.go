package round2

import (
	"fmt"
	"strings"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/layout"
)

// Strategy selects how the round-2 half of a dual-round row is located.
type Strategy string

const (
	// Positional trusts the column count of the row.
	Positional Strategy = "positional"
	// Smart finds institute cells by content and falls back to the round-1 allotment.
	Smart Strategy = "smart"
)

func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case Positional, "":
		return Positional, nil
	case Smart:
		return Smart, nil
	}
	return "", fmt.Errorf("unknown round 2 strategy %q", name)
}

// SmartMinColumns is the narrowest row the smart strategy will look at.
const SmartMinColumns = 5

// Outcome says what became of a row.
type Outcome int

const (
	Accepted Outcome = iota
	Short
	Invalid
	NoUpgrade
	NoData
)

var (
	positionalHeaderMarkers = []string{"Rank", "Quota"}
	smartHeaderMarkers      = []string{"Rank", "Quota", "Institute"}
)

// IsHeader reports whether row is the column header of a round-2 table.
func IsHeader(row common.RawRow, strategy Strategy) bool {
	if strategy == Smart {
		return row.ContainsAny(smartHeaderMarkers...)
	}
	return row.ContainsAny(positionalHeaderMarkers...)
}

// IsNoUpgrade reports whether the remarks say the candidate did not opt for upgradation.
func IsNoUpgrade(remarks string) bool {
	return strings.Contains(strings.ToLower(remarks), "not opt")
}

// IsMissing reports whether a cell carries no value.
func IsMissing(cell string) bool {
	return cell == "" || common.IsPlaceholder(cell)
}

// ParsePositional reads the round-2 allotment from a row whose layout is chosen by
// its width. Rows of unexpected width go through the keyword search.
func ParsePositional(row common.RawRow, defaults common.Defaults) (common.AllotmentRecord, layout.Variant, Outcome) {
	var record common.AllotmentRecord

	if len(row) < layout.DualMinColumns {
		return record, layout.Unknown, Short
	}

	rank, ok := common.ParseRank(row.Cell(0))
	if !ok {
		return record, layout.Unknown, Invalid
	}

	remarks := row.Cell(len(row) - 1)
	if IsNoUpgrade(remarks) {
		return record, layout.Unknown, NoUpgrade
	}
	if IsMissing(remarks) {
		return record, layout.Unknown, Invalid
	}

	variant := layout.DualVariant(row)
	cols := layout.Resolve(variant, row)

	institute := cols.Cell(row, layout.Institute)
	course := cols.Cell(row, layout.Course)
	if IsMissing(institute) || IsMissing(course) {
		return record, variant, Invalid
	}

	return common.AllotmentRecord{
		Rank:              rank,
		Quota:             common.Or(cols.Cell(row, layout.Quota), defaults.Quota),
		Institute:         institute,
		Course:            course,
		Category:          common.Or(cols.Cell(row, layout.Category), defaults.Category),
		CandidateCategory: common.Or(cols.Cell(row, layout.CandidateCategory), defaults.CandidateCategory),
	}, variant, Accepted
}

// ParseSmart reads the round-2 allotment located by content. When the candidate has
// no usable round-2 allotment the round-1 allotment on the same row is used instead,
// with its category taken from lookup.
func ParseSmart(row common.RawRow, lookup *Lookup, defaults common.Defaults) (common.AllotmentRecord, Outcome) {
	var record common.AllotmentRecord

	if len(row) < SmartMinColumns {
		return record, Short
	}

	rank, ok := common.ParseRank(row.Cell(0))
	if !ok {
		return record, Invalid
	}

	dual := layout.DetectDual(row)

	if hasRound2(row, dual.Round2) {
		cols := dual.Round2
		return common.AllotmentRecord{
			Rank:              rank,
			Quota:             common.Or(cols.Cell(row, layout.Quota), defaults.Quota),
			Institute:         cols.Cell(row, layout.Institute),
			Course:            cols.Cell(row, layout.Course),
			Category:          common.Or(cols.Cell(row, layout.Category), defaults.Category),
			CandidateCategory: common.Or(cols.Cell(row, layout.CandidateCategory), defaults.CandidateCategory),
		}, Accepted
	}

	cols := dual.Round1
	if !cols.Has(layout.Institute) || !cols.Has(layout.Course) {
		return record, NoData
	}

	institute := cols.Cell(row, layout.Institute)
	course := cols.Cell(row, layout.Course)
	if IsMissing(institute) || IsMissing(course) {
		return record, Invalid
	}

	quota := common.Or(cols.Cell(row, layout.Quota), defaults.Quota)

	category, candidate := defaults.Category, defaults.CandidateCategory
	if lookup != nil {
		category, candidate = lookup.Category(rank, institute, course, quota)
	}

	return common.AllotmentRecord{
		Rank:              rank,
		Quota:             quota,
		Institute:         institute,
		Course:            course,
		Category:          common.Or(category, defaults.Category),
		CandidateCategory: common.Or(candidate, defaults.CandidateCategory),
		UsedRound1:        true,
	}, Accepted
}

func hasRound2(row common.RawRow, cols layout.Columns) bool {
	if !cols.Has(layout.Institute) || !cols.Has(layout.Course) {
		return false
	}
	if IsMissing(cols.Cell(row, layout.Institute)) || IsMissing(cols.Cell(row, layout.Course)) {
		return false
	}
	return !IsNoUpgrade(cols.Cell(row, layout.Remarks))
}
