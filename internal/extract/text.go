package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from an HTML fragment, decoding entities.
// Whitespace is kept exactly as written, so character offsets in the
// result line up with the visible text.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.StartTagToken:
			if isHiddenTag(z) {
				skip++
			}
		case html.EndTagToken:
			if isHiddenTag(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		}
	}
}

// isHiddenTag skips script, style, noscript and iframe bodies
func isHiddenTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript", "iframe":
		return true
	}
	return false
}
