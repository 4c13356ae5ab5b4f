// CLAUDE:SUMMARY Utterance normalizers: acronym folding ("U. S." -> "US") and the casing modes of the default processor (locale, fold, simple, keep).
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites an utterance.
type Normalizer func(string) string

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAcronyms merges runs of acronym fragments ("U." "S.") into one
// upper-case token ("US"). Tokens are whitespace separated and the result is
// joined with single spaces.
func FoldAcronyms(s string) string {
	tokens := strings.Fields(s)
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); {
		if !isAcronymFragment(tokens[i]) {
			out = append(out, tokens[i])
			i++
			continue
		}
		var acronym strings.Builder
		for i < len(tokens) && isAcronymFragment(tokens[i]) {
			first := []rune(tokens[i])[0]
			acronym.WriteRune(unicode.ToUpper(first))
			i++
		}
		out = append(out, acronym.String())
	}
	return strings.Join(out, " ")
}

// isAcronymFragment reports whether tok is a letter followed by a period,
// counted in runes so "é." qualifies.
func isAcronymFragment(tok string) bool {
	r := []rune(tok)
	return len(r) == 2 && r[1] == '.'
}

// StripAccents removes combining marks but keeps case.
func StripAccents(s string) string {
	result, _, _ := transform.String(stripAccents, s)
	return result
}

// Casing modes accepted by GetNormalizer.
const (
	CaseLocale = "locale" // lowercase with the rules of the locale's language
	CaseFold   = "fold"   // locale lowercase, then drop accents
	CaseSimple = "simple" // language-independent lowercase
	CaseKeep   = "keep"   // no change
)

// GetNormalizer returns the casing step the default processor applies to
// text of language tag. An empty mode is CaseLocale.
func GetNormalizer(mode string, tag language.Tag) (Normalizer, error) {
	lower := func(t language.Tag) Normalizer {
		// A Caser keeps state, so each call gets its own.
		return func(s string) string { return cases.Lower(t).String(s) }
	}
	switch mode {
	case "", CaseLocale:
		return lower(tag), nil
	case CaseFold:
		l := lower(tag)
		return func(s string) string { return StripAccents(l(s)) }, nil
	case CaseSimple:
		return lower(language.Und), nil
	case CaseKeep:
		return func(s string) string { return s }, nil
	}
	return nil, fmt.Errorf("unknown normalizer %q (want %s, %s, %s or %s)", mode, CaseLocale, CaseFold, CaseSimple, CaseKeep)
}
