package domain

import (
	"strconv"
	"strings"
)

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Natural ordering ------------------------------------------------------------
//
// Listing order for human-entered keys (apartment numbers, tenant names).
// Strings are split into alternating runs of digits and non-digits; digit runs
// compare by numeric value, non-digit runs compare as lowercase strings, and a
// digit run sorts before a non-digit run. Fully numeric strings sort before
// mixed strings by value, which keeps "2" ahead of "10" and both ahead of
// "1A" the way the legacy listings ordered them.

type naturalToken struct {
	text  string
	isNum bool
}

func naturalTokens(s string) []naturalToken {
	var tokens []naturalToken
	var run strings.Builder
	runIsNum := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		tokens = append(tokens, naturalToken{text: run.String(), isNum: runIsNum})
		run.Reset()
	}
	for _, r := range strings.ToLower(s) {
		isDigit := r >= '0' && r <= '9'
		if run.Len() > 0 && isDigit != runIsNum {
			flush()
		}
		runIsNum = isDigit
		run.WriteRune(r)
	}
	flush()
	return tokens
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compareDigitRuns compares two digit runs by numeric value without parsing,
// so arbitrarily long runs cannot overflow.
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// CompareNatural reports the natural ordering of a and b: negative when a
// sorts first, zero when equivalent.
func CompareNatural(a, b string) int {
	aNum, bNum := isAllDigits(a), isAllDigits(b)
	if aNum && bNum {
		return compareDigitRuns(a, b)
	}
	if aNum != bNum {
		if aNum {
			return -1
		}
		return 1
	}
	at, bt := naturalTokens(a), naturalTokens(b)
	for i := 0; i < len(at) && i < len(bt); i++ {
		x, y := at[i], bt[i]
		if x.isNum != y.isNum {
			if x.isNum {
				return -1
			}
			return 1
		}
		var c int
		if x.isNum {
			c = compareDigitRuns(x.text, y.text)
		} else {
			c = strings.Compare(x.text, y.text)
		}
		if c != 0 {
			return c
		}
	}
	// Shorter sequences pad-compare as less.
	switch {
	case len(at) < len(bt):
		return -1
	case len(at) > len(bt):
		return 1
	}
	return 0
}

// NaturalLess is the less-func form of CompareNatural for sort.Slice.
func NaturalLess(a, b string) bool {
	return CompareNatural(a, b) < 0
}

// Apartment listing priority --------------------------------------------------
//
// Management views use a stricter ordering than the natural key: basements
// and storage first, standard floors by floor then unit type, penthouses last
// regardless of floor.

// UnitTypePriority ranks unit types within a floor.
func UnitTypePriority(t UnitType) int {
	switch t {
	case UnitStorage:
		return 0
	case UnitCommercial:
		return 1
	case UnitPenthouse:
		return 99
	default: // standard and other share a rank
		return 2
	}
}

type listingKey struct {
	mainGroup     int
	floor         int
	typePriority  int
	leadingNumber int
	number        string
}

func listingKeyFor(a Apartment) listingKey {
	floor, err := strconv.Atoi(strings.TrimSpace(a.Floor))
	if err != nil {
		floor = 0
	}
	prio := UnitTypePriority(a.UnitType)
	group := 1
	if floor <= 0 {
		group = 0
	} else if prio == 99 {
		group = 2
	}
	leading := 0
	if tokens := naturalTokens(a.Number); len(tokens) > 0 && tokens[0].isNum {
		if n, err := strconv.Atoi(tokens[0].text); err == nil {
			leading = n
		}
	}
	return listingKey{mainGroup: group, floor: floor, typePriority: prio, leadingNumber: leading, number: a.Number}
}

// ListingLess orders apartments for management views by the key tuple
// (mainGroup, floor, typePriority, leadingNumber, number), ascending.
func ListingLess(a, b Apartment) bool {
	ka, kb := listingKeyFor(a), listingKeyFor(b)
	if ka.mainGroup != kb.mainGroup {
		return ka.mainGroup < kb.mainGroup
	}
	if ka.floor != kb.floor {
		return ka.floor < kb.floor
	}
	if ka.typePriority != kb.typePriority {
		return ka.typePriority < kb.typePriority
	}
	if ka.leadingNumber != kb.leadingNumber {
		return ka.leadingNumber < kb.leadingNumber
	}
	return ka.number < kb.number
}
