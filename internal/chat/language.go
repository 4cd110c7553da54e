package chat

import "unicode"

// scriptTables are the writing systems the site gets non-English traffic in.
var scriptTables = []*unicode.RangeTable{
	unicode.Devanagari, // Hindi
	unicode.Tamil,
	unicode.Telugu,
	unicode.Han, // Chinese
	unicode.Arabic,
	unicode.Hiragana,
	unicode.Katakana,
}

// isNonEnglish reports whether s contains a rune outside printable ASCII or
// from one of the known non-Latin scripts. Tab, newline and carriage return
// count as whitespace, not as foreign text.
func isNonEnglish(s string) bool {
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			continue
		case r < 0x20 || r > 0x7e:
			return true
		case unicode.In(r, scriptTables...):
			return true
		}
	}
	return false
}
