package question

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// replaceFold replaces every case-insensitive occurrence of old in s with new.
// Example sentences rarely match the stored word's casing exactly, so a plain
// strings.ReplaceAll would leave the answer visible in the blank. Matching
// walks the original string rune by rune: lowering the whole string first
// shifts byte offsets whenever folding changes a rune's encoded length
// (İ lowers to a two-rune sequence).
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n := foldMatchLen(s[i:], old); n > 0 {
			b.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldMatchLen reports the byte length of a case-insensitive match of target
// at the start of s, or 0 when s does not start with target.
func foldMatchLen(s, target string) int {
	n := 0
	for _, tr := range target {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0
		}
		if r != tr && unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0
		}
		n += size
	}
	return n
}
