package textvec

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// wordRun matches maximal runs of word characters (letters, marks, digits, '_').
var wordRun = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// minTokenRunes drops one-character tokens, like the usual \b\w\w+\b pattern.
const minTokenRunes = 2

// Tokenize splits text into case-folded tokens of at least two word
// characters, in order of appearance. Punctuation and whitespace separate
// tokens; apostrophes split contractions ("don't" → "don").
//
// Tokenize is safe for concurrent use: it builds its own Caser per call.
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	runs := wordRun.FindAllString(folded, -1)
	out := runs[:0]
	for _, r := range runs {
		if utf8.RuneCountInString(r) >= minTokenRunes {
			out = append(out, r)
		}
	}

	return out
}
