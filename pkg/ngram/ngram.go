// Package ngram appends positional word-pair pseudo-tokens to utterances.
package ngram

import "strings"

// Augment returns tokens followed by every adjacent pair (t[i-1]_t[i]) and
// then every skip-one pair (t[i-2]_t[i]), each in increasing position order.
func Augment(tokens []string) []string {
	n := len(tokens)
	out := make([]string, 0, n+max(n-1, 0)+max(n-2, 0))
	out = append(out, tokens...)
	for i := 1; i < n; i++ {
		out = append(out, tokens[i-1]+"_"+tokens[i])
	}
	for i := 2; i < n; i++ {
		out = append(out, tokens[i-2]+"_"+tokens[i])
	}
	return out
}

// AugmentString splits s on single spaces, augments it and joins the result
// with single spaces.
func AugmentString(s string) string {
	return strings.Join(Augment(strings.Split(s, " ")), " ")
}
