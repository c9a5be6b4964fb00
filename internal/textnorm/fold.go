// Package textnorm folds scraped free text into the canonical form every
// matcher in the engine compares against.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripCombining removes Unicode combining marks (category M) after NFD decomposition.
type stripCombining struct{ transform.NopResetter }

func (stripCombining) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if unicode.Is(unicode.M, r) {
			nSrc += size
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Fold lowercases, strips accents, trims and collapses whitespace runs.
// "  Crème  de LA Mer " becomes "creme de la mer".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, stripCombining{}, norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	return strings.Join(strings.Fields(s), " ")
}

// FoldList folds every entry, drops empties and duplicates, and keeps first-seen order.
// The result is never nil.
func FoldList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		item = Fold(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Key folds s into an identifier: spaces and hyphens become underscores.
func Key(s string) string {
	s = Fold(s)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// ContainsEither reports whether a contains b or b contains a.
// Empty strings never match; an empty needle would otherwise match everything.
func ContainsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
