package institute

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MalformedKeywords flag fragments left behind by broken cell joins, e.g. "STATEUTTAR PRADESH".
var MalformedKeywords = []string{"state", "stateuttar", "stateuttar pradesh", "pradesh,", "nadu,"}

const maxPlaceLength = 100

// Tokens splits a raw institute cell on commas, trimming and dropping empty pieces.
func Tokens(raw string) []string {
	var tokens []string
	for _, piece := range strings.Split(raw, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			tokens = append(tokens, piece)
		}
	}
	return tokens
}

// Extract turns a raw institute cell into "Name, Place", or just "Name" when no place
// can be isolated. The first token is always the name.
//
// The place is the last token that is not a pincode, state, email, repeat of the name,
// malformed fragment, overlong or address-like. When the backward scan finds nothing,
// a city immediately followed by a state is accepted instead.
func Extract(raw string) string {
	tokens := Tokens(raw)
	if len(tokens) == 0 {
		return ""
	}

	name := tokens[0]
	if len(tokens) == 1 {
		return name
	}

	place := scanBackward(name, tokens)
	if place == "" {
		place = scanForward(name, tokens)
	}

	if place == "" {
		return name
	}
	return name + ", " + place
}

func scanBackward(name string, tokens []string) string {
	for i := len(tokens) - 1; i > 0; i-- {
		token := tokens[i]

		switch {
		case utf8.RuneCountInString(token) < 2:
		case IsPincode(token):
		case IsStateOrUT(token):
		case IsEmail(token):
		case sameName(token, name):
		case isMalformed(token):
		case utf8.RuneCountInString(token) > maxPlaceLength:
		case IsAddressLike(token):
		default:
			return token
		}
	}
	return ""
}

// scanForward handles "NAME, NAME, City, State, pincode" style cells where the
// backward pass skipped everything.
func scanForward(name string, tokens []string) string {
	for i := 1; i < len(tokens); i++ {
		token := tokens[i]
		if sameName(token, name) {
			continue
		}

		length := utf8.RuneCountInString(token)
		if length > 3 && length < 30 && !hasDigit(token) {
			if i+1 < len(tokens) && IsStateOrUT(tokens[i+1]) {
				return token
			}
		}
	}
	return ""
}

func sameName(token, name string) bool {
	return strings.ToLower(strings.TrimSpace(token)) == strings.ToLower(strings.TrimSpace(name))
}

func isMalformed(token string) bool {
	lower := strings.ToLower(token)
	for _, kw := range MalformedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasDigit(token string) bool {
	return strings.IndexFunc(token, unicode.IsDigit) >= 0
}
