package keywords

import (
	"strings"
	"unicode"
)

// Scoring weights for keyword overlap between a query and a candidate
// filename. Exact token matches count double what substring matches do.
const (
	ExactMatchScore     = 2
	SubstringMatchScore = 1
)

// MinTokenLength is the shortest token kept by Extract. Shorter tokens are
// almost always noise ("a", "of", "is").
const MinTokenLength = 3

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "has": true,
	"was": true, "one": true, "our": true, "out": true, "use": true,
	"how": true, "its": true, "who": true, "with": true, "this": true,
	"that": true, "from": true, "they": true, "what": true, "when": true,
	"where": true, "which": true, "their": true, "about": true,
	"into": true, "than": true, "them": true, "then": true, "these": true,
	"some": true, "such": true, "very": true, "will": true, "your": true,
	"have": true, "more": true, "most": true, "other": true, "also": true,
	"been": true, "each": true, "between": true, "both": true,
}

// Tokenize lowercases text and splits it on non-alphanumeric boundaries.
// No stopword or length filtering is applied.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Extract returns the content words of text: lowercased, deduplicated,
// stopwords and short tokens removed. Order of first occurrence is
// preserved so callers can treat leading keywords as the most prominent.
func Extract(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range Tokenize(text) {
		if len(tok) < MinTokenLength || stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Score computes the keyword overlap between the extracted keywords of
// query and the tokens of candidate text. Each query keyword adds
// ExactMatchScore when it appears as a whole token, otherwise
// SubstringMatchScore when it appears inside a token. Known imprecision:
// substring credit can fire on unrelated longer tokens (e.g. "cat"
// inside "category").
func Score(query string, candidate string) int {
	tokens := Tokenize(candidate)
	exact := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		exact[t] = true
	}

	score := 0
	for _, kw := range Extract(query) {
		if exact[kw] {
			score += ExactMatchScore
			continue
		}
		for _, t := range tokens {
			if strings.Contains(t, kw) {
				score += SubstringMatchScore
				break
			}
		}
	}
	return score
}

// Overlaps reports whether any of the given keywords appears in candidate,
// either as a whole token or as a substring of one.
func Overlaps(kws []string, candidate string) bool {
	tokens := Tokenize(candidate)
	for _, kw := range kws {
		for _, t := range tokens {
			if t == kw || strings.Contains(t, kw) {
				return true
			}
		}
	}
	return false
}
