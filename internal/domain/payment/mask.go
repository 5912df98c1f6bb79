package payment

import "strings"

// ApplyMask formats value with a "{{9999}} {{9999}}" style mask: every rune
// inside a placeholder is taken from value, literals are copied from the mask.
func ApplyMask(mask, value string) string {
	if mask == "" {
		return value
	}

	m := []rune(mask)
	v := []rune(value)

	var b strings.Builder
	inPlaceholder := false
	i := 0
	for j := 0; j < len(m) && i < len(v); j++ {
		switch {
		case m[j] == '{' && j+1 < len(m) && m[j+1] == '{':
			inPlaceholder = true
			j++
		case m[j] == '}' && j+1 < len(m) && m[j+1] == '}':
			inPlaceholder = false
			j++
		case inPlaceholder:
			b.WriteRune(v[i])
			i++
		default:
			b.WriteRune(m[j])
		}
	}
	return b.String()
}

// Unmask strips the mask's literal runes from value.
func Unmask(mask, value string) string {
	if mask == "" {
		return value
	}

	literals := map[rune]struct{}{}
	m := []rune(mask)
	inPlaceholder := false
	for j := 0; j < len(m); j++ {
		switch {
		case m[j] == '{' && j+1 < len(m) && m[j+1] == '{':
			inPlaceholder = true
			j++
		case m[j] == '}' && j+1 < len(m) && m[j+1] == '}':
			inPlaceholder = false
			j++
		case !inPlaceholder:
			literals[m[j]] = struct{}{}
		}
	}

	return strings.Map(func(r rune) rune {
		if _, ok := literals[r]; ok {
			return -1
		}
		return r
	}, value)
}
