package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

var rankRegex = regexp.MustCompile(`^[0-9]+$`)

var placeholders = map[string]struct{}{
	"-":   {},
	"--":  {},
	"---": {},
	"NA":  {},
	"N/A": {},
}

// CleanCell flattens line breaks, trims and NFC-normalises a cell value.
func CleanCell(text string) string {
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	return norm.NFC.String(strings.TrimSpace(text))
}

// CleanNumber renders a numeric cell the way it reads in the bulletin.
// Whole numbers lose their fraction so "1234.0" becomes "1234".
func CleanNumber(text string) (string, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	return amount.String(), nil
}

// ParseRank reports whether cell holds a positive integer rank.
func ParseRank(cell string) (int, bool) {
	cell = CleanCell(cell)
	if !rankRegex.MatchString(cell) {
		return 0, false
	}
	rank, err := strconv.Atoi(cell)
	if err != nil || rank <= 0 {
		return 0, false
	}
	return rank, true
}

// IsPlaceholder reports whether a cell is one of the dash/NA markers used for "no value".
func IsPlaceholder(cell string) bool {
	_, ok := placeholders[cell]
	return ok
}

// Cell returns the cleaned cell at idx, or "" when the row is too short.
func (r RawRow) Cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return CleanCell(r[idx])
}

// ContainsAny reports whether any cell of the row contains one of the markers.
func (r RawRow) ContainsAny(markers ...string) bool {
	for _, cell := range r {
		for _, m := range markers {
			if strings.Contains(cell, m) {
				return true
			}
		}
	}
	return false
}

// Or returns value unless it is empty or a placeholder, in which case fallback.
func Or(value, fallback string) string {
	if value == "" || IsPlaceholder(value) {
		return fallback
	}
	return value
}
