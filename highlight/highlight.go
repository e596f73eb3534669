// Package highlight renders explanations for people: it marks the first
// case-insensitive whole-word occurrence of each relevant term in the
// original document text. It consumes resolved terms and knows nothing about
// patterns or scores.
package highlight

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// Default HTML markers.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// word matches the same word runs the vectorizer tokenizes.
var word = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// span is a byte range [lo, hi) of text.
type span struct{ lo, hi int }

// locate returns, in text order, the first whole-word occurrence of every
// term. Terms that do not occur are skipped; a word is marked at most once.
func locate(text string, terms []string) []span {
	fold := cases.Fold()
	want := make(map[string]bool, len(terms))
	for _, t := range terms {
		want[fold.String(t)] = true
	}

	var out []span
	for _, loc := range word.FindAllStringIndex(text, -1) {
		if len(want) == 0 {
			break
		}
		w := fold.String(text[loc[0]:loc[1]])
		if want[w] {
			out = append(out, span{loc[0], loc[1]})
			delete(want, w) // first occurrence only
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].lo < out[j].lo })

	return out
}

// render writes text with every span wrapped in open/close; esc transforms
// each text segment (identity for plain output).
func render(text string, spans []span, open, close string, esc func(string) string) string {
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(esc(text[prev:s.lo]))
		b.WriteString(open)
		b.WriteString(esc(text[s.lo:s.hi]))
		b.WriteString(close)
		prev = s.hi
	}
	b.WriteString(esc(text[prev:]))

	return b.String()
}

// Mark wraps the first whole-word, case-insensitive occurrence of each term
// in open/close. The original casing of the text is kept.
func Mark(text string, terms []string, open, close string) string {
	return render(text, locate(text, terms), open, close, func(s string) string { return s })
}

// HTML escapes text for safe embedding and wraps matches in <mark>.
func HTML(text string, terms []string) string {
	return render(text, locate(text, terms), MarkOpen, MarkClose, html.EscapeString)
}
