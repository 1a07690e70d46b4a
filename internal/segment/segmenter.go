// Package segment provides the tokenizer used for the unparsed remainder of
// an address. The engine only depends on the Segment method set defined in
// internal/similarity.
package segment

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// SimpleSegmenter splits text into word-like units without a dictionary:
// every CJK rune is its own token, consecutive ASCII letters or digits are
// grouped into one token (full-width forms folded first, letters
// lowercased), everything else separates tokens. For short address tails
// this single-character segmentation works well together with the term
// density measure of the scorer.
type SimpleSegmenter struct{}

func NewSimpleSegmenter() *SimpleSegmenter { return &SimpleSegmenter{} }

func (s *SimpleSegmenter) Segment(text string) []string {
	tokens := make([]string, 0, len(text)/3)
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}

	for _, r := range width.Narrow.String(text) {
		switch {
		case r >= '0' && r <= '9' || r >= 'a' && r <= 'z':
			run.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			run.WriteRune(unicode.ToLower(r))
		case unicode.Is(unicode.Han, r):
			flush()
			tokens = append(tokens, string(r))
		default:
			flush()
		}
	}
	flush()
	return tokens
}
