package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CapitalizeWords upper-cases the first letter of every space-separated word
// and lower-cases the rest. Words made only of the letters I, V, X, L, C, D
// and M are treated as Roman numerals and upper-cased entirely, which also
// catches ordinary words such as "mil" or "di". Consecutive spaces produce
// empty words that are kept as they are.
func CapitalizeWords(value string) string {
	value = norm.NFC.String(value)
	words := strings.Split(value, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		if IsRomanNumeral(word) {
			words[i] = strings.ToUpper(word)
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// IsRomanNumeral reports whether word consists only of Roman numeral letters,
// ignoring case. It does not check that the numeral is well formed.
func IsRomanNumeral(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		switch unicode.ToLower(r) {
		case 'i', 'v', 'x', 'l', 'c', 'd', 'm':
		default:
			return false
		}
	}
	return true
}
