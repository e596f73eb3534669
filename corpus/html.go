package corpus

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup (reviews contain "<br /><br />") and decodes
// entities. Line-break and block elements become a single space so adjacent
// words do not merge; runs of whitespace collapse to one space.
func StripHTML(text string) string {
	z := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
