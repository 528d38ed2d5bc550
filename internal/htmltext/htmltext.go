// Package htmltext converts noisy advisory markup into classifiable plain
// text. All functions are pure and deterministic.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// StripTags removes markup from s and resolves HTML entities. Every removed
// tag contributes a word boundary, so text separated only by tags never
// concatenates into one word. Script and style bodies are dropped entirely.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// Tokenizer reports io.EOF as an error token; either way we
			// are done and keep whatever text was collected.
			return b.String()
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if raw := string(name); raw == "script" || raw == "style" {
				skipDepth++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if raw := string(name); (raw == "script" || raw == "style") && skipDepth > 0 {
				skipDepth--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

// Collapse reduces every whitespace run in s to a single space and trims the
// ends.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize turns raw markup into plain, single-spaced text: tags stripped,
// entities resolved, Unicode composed to NFC, whitespace collapsed.
func Normalize(s string) string {
	return Collapse(norm.NFC.String(StripTags(s)))
}
