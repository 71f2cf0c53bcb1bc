// Package institute normalises the noisy, comma-joined institute cells of NEET PG
// allotment bulletins into "Institute Name, Place".
package institute

import (
	"regexp"
	"strings"
)

// States holds the lower-cased Indian state and union territory names that are never
// taken as a place.
var States = map[string]struct{}{
	"andhra pradesh":              {},
	"arunachal pradesh":           {},
	"assam":                       {},
	"bihar":                       {},
	"chhattisgarh":                {},
	"goa":                         {},
	"gujarat":                     {},
	"haryana":                     {},
	"himachal pradesh":            {},
	"jharkhand":                   {},
	"karnataka":                   {},
	"kerala":                      {},
	"madhya pradesh":              {},
	"maharashtra":                 {},
	"manipur":                     {},
	"meghalaya":                   {},
	"mizoram":                     {},
	"nagaland":                    {},
	"odisha":                      {},
	"punjab":                      {},
	"rajasthan":                   {},
	"sikkim":                      {},
	"tamil nadu":                  {},
	"telangana":                   {},
	"tripura":                     {},
	"uttar pradesh":               {},
	"uttarakhand":                 {},
	"west bengal":                 {},
	"andaman and nicobar islands": {},
	"chandigarh":                  {},
	"dadra and nagar haveli":      {},
	"daman and diu":               {},
	"lakshadweep":                 {},
	"puducherry":                  {},
	"jammu and kashmir":           {},
	"ladakh":                      {},
	"delhi (nct)":                 {},
	"nct":                         {},
}

// AddressKeywords mark street-level address fragments.
var AddressKeywords = []string{
	"road", "rd", "street", "st", "marg", "salai",
	"sector", "block", "phase", "near", "opposite",
}

var (
	pincodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
	emailRegex   = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// IsPincode reports whether token is a 6-digit postal code.
func IsPincode(token string) bool {
	return pincodeRegex.MatchString(strings.TrimSpace(token))
}

// IsStateOrUT reports whether token names a state or union territory. Any token with a
// parenthetical qualifier, like "Delhi (NCT)", counts as well.
func IsStateOrUT(token string) bool {
	if _, ok := States[strings.ToLower(strings.TrimSpace(token))]; ok {
		return true
	}
	return strings.Contains(token, "(") && strings.Contains(token, ")")
}

// IsEmail reports whether token contains an email address.
func IsEmail(token string) bool {
	return emailRegex.MatchString(token)
}

// IsAddressLike reports whether token contains at least two address keywords.
// Keywords match as substrings, so "st" also hits "stand" and "institute".
func IsAddressLike(token string) bool {
	lower := strings.ToLower(token)
	hits := 0
	for _, kw := range AddressKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits >= 2
}
