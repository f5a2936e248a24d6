// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package campo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNaoDigito = regexp.MustCompile(`\D`)
	reDocComDV  = regexp.MustCompile(`^\s*(\d{1,30})\s*[-/.]\s*\d\s*$`)

	// NFKD plus removal of combining marks folds accented characters
	// to their ASCII base ("José" -> "Jose").
	desacentua = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Alfanumerico prepares free text for an alphanumeric fixed-width
// field: accents are folded away and anything outside the charset the
// bank accepts ([A-Za-z0-9 -./&]) becomes a space. Callers upper-case
// at the point of insertion.
func Alfanumerico(s string) string {
	folded, _, err := transform.String(desacentua, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '.', r == '/', r == '&':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Digitos strips everything that's not a decimal digit.
func Digitos(s string) string {
	return reNaoDigito.ReplaceAllString(s, "")
}

// DocSemDV normalizes a document number by dropping a trailing check
// digit written as "-N", "/N" or ".N" ("0000003672-3" -> "0000003672").
// Anything else reduces to its digits.
func DocSemDV(s string) string {
	s = strings.TrimSpace(s)
	if m := reDocComDV.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return Digitos(s)
}

// DocPagador14 returns the payer document as 14 digits, keeping the
// rightmost digits and zero filling CPFs on the left.
func DocPagador14(s string) string {
	d := Digitos(s)
	if len(d) > 14 {
		d = d[len(d)-14:]
	}
	return ZeroEsquerda(d, 14)
}

// ZeroEsquerda right-justifies s in width columns, zero filled. Longer
// values keep their rightmost digits.
func ZeroEsquerda(s string, width int) string {
	if len(s) > width {
		s = s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
