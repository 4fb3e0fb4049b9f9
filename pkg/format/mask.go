package format

import "strings"

// Mask templates. Every '0' is a digit slot; any other rune is a literal
// separator emitted verbatim.
const (
	MaskCPF  = "000.000.000-00"
	MaskCNPJ = "00.000.000/0000-00"
	MaskCEP  = "00.000-000"
)

const digitSlot = '0'

// Mask strips every non-digit from raw and lays the digits over pattern. The
// walk stops as soon as either the digits or the pattern runs out, so partial
// input yields a partial mask and separators past the last typed digit are not
// emitted. Digits beyond the pattern's capacity are dropped without notice.
func Mask(raw, pattern string) string {
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(pattern))
	di := 0
	for _, slot := range pattern {
		if di >= len(digits) {
			break
		}
		if slot == digitSlot {
			b.WriteByte(digits[di])
			di++
			continue
		}
		b.WriteRune(slot)
	}
	return b.String()
}

// Capacity reports how many digits pattern can hold.
func Capacity(pattern string) int {
	return strings.Count(pattern, string(digitSlot))
}

func onlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
